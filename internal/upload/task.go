package upload

// Status is the lifecycle stage of a Task. Tasks move strictly
// Pending -> Uploading -> Done or Failed.
type Status int

const (
	Pending Status = iota
	Uploading
	Done
	Failed
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Uploading:
		return "uploading"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Task tracks one file of the current batch. Key is assigned when the
// upload starts.
type Task struct {
	File     File
	Key      string
	Progress int
	Status   Status
	Err      error
}

// ProgressFunc observes task updates. It is called from the Submit
// goroutine with a copy of the task.
type ProgressFunc func(index int, task Task)
