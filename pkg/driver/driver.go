package driver

import "errors"

var ErrDriverNotFound = errors.New("driver not found")

// Driver is one roster entry. Name is what the ride log refers to; the report
// roster is built from these records.
type Driver struct {
	ID         int
	Uid        string
	Name       string
	EmployeeID string
	Role       string
	Contract   string
	Schedule   string
	Pay        float64
	IsActive   bool
}
