package core

// Run is one execution of a classifier against a task, ready to be published
// to the tracking service.
type Run struct {
	TaskID      int64     `json:"task_id"`
	FlowName    string    `json:"flow_name"`
	Predictions []float64 `json:"predictions"`
	Accuracy    float64   `json:"accuracy"`
}
