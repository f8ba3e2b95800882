package core

// Task is an externally defined benchmark problem: a dataset plus a
// predefined train/test protocol, addressed by an identifier.
type Task struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	DatasetID int64  `json:"dataset_id"`
	Target    string `json:"target"`
	Split     Split  `json:"split"`
}

// Split holds the predefined estimation-procedure indices for a task.
type Split struct {
	Train []int `json:"train"`
	Test  []int `json:"test"`
}
