package order

import "fmt"

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusCompleted, StatusCancelled:
		return st, nil
	default:
		return "", fmt.Errorf("unknown order status %q", s)
	}
}

// Label is the status as shown to customers.
func (s Status) Label() string {
	switch s {
	case StatusCompleted:
		return "Выполнен"
	case StatusCancelled:
		return "Отменён"
	default:
		return "В обработке"
	}
}
