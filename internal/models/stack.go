package models

// StackDetails captures the identifying facts of a managed stack as reported
// by the control plane.
type StackDetails struct {
	Name       string
	ID         string
	Region     string
	Parameters map[string]string
	Outputs    map[string]string
}
