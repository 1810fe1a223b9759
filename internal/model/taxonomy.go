package model

import "fmt"

// Status is a ticket's lifecycle state. Transitions between states are
// governed by the ticket package; the server remains authoritative.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusResolved   Status = "RESOLVED"
	StatusClosed     Status = "CLOSED"
	StatusCancelled  Status = "CANCELLED"
)

// Statuses lists every lifecycle state in display order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusResolved, StatusClosed, StatusCancelled}

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusInProgress, StatusResolved, StatusClosed, StatusCancelled:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown status: %q", s)
}

func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pendiente"
	case StatusInProgress:
		return "En Progreso"
	case StatusResolved:
		return "Resuelta"
	case StatusClosed:
		return "Cerrada"
	case StatusCancelled:
		return "Cancelada"
	}
	return string(s)
}

// Priority is the ordinal urgency of a ticket. It is chosen once at
// creation and carries no transition rules.
type Priority string

const (
	PriorityLow      Priority = "LOW"
	PriorityMedium   Priority = "MEDIUM"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

// Priorities lists priorities from least to most urgent.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return Priority(s), nil
	}
	return "", fmt.Errorf("unknown priority: %q", s)
}

func (p Priority) Label() string {
	switch p {
	case PriorityLow:
		return "Baja"
	case PriorityMedium:
		return "Media"
	case PriorityHigh:
		return "Alta"
	case PriorityCritical:
		return "Crítica"
	}
	return string(p)
}

// Category is the flat ticket taxonomy. Exactly one per ticket, set at
// creation.
type Category string

const (
	CategoryTechnicalSupport Category = "TECHNICAL_SUPPORT"
	CategoryGeneralInquiry   Category = "GENERAL_INQUIRY"
	CategoryAccessIssue      Category = "ACCESS_ISSUE"
	CategoryBilling          Category = "BILLING"
	CategoryOther            Category = "OTHER"
)

var Categories = []Category{
	CategoryTechnicalSupport,
	CategoryGeneralInquiry,
	CategoryAccessIssue,
	CategoryBilling,
	CategoryOther,
}

func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryTechnicalSupport, CategoryGeneralInquiry, CategoryAccessIssue, CategoryBilling, CategoryOther:
		return Category(s), nil
	}
	return "", fmt.Errorf("unknown category: %q", s)
}

func (c Category) Label() string {
	switch c {
	case CategoryTechnicalSupport:
		return "Soporte Técnico"
	case CategoryGeneralInquiry:
		return "Consulta General"
	case CategoryAccessIssue:
		return "Problema de Acceso"
	case CategoryBilling:
		return "Facturación"
	case CategoryOther:
		return "Otro"
	}
	return string(c)
}
