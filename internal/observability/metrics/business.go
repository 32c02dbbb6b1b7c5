package metrics

// Result labels for StoryOperationsTotal.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// RecordStoryOperation records the outcome of a use case operation
// such as "create", "update" or "delete".
func RecordStoryOperation(operation string, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultFailure
	}
	StoryOperationsTotal.WithLabelValues(operation, result).Inc()
}

// RecordImageUpload records the size of an accepted image.
func RecordImageUpload(size int64) {
	ImageUploadSize.Observe(float64(size))
}

// UpdateStoriesTotal updates the total count of stories.
func UpdateStoriesTotal(count int64) {
	StoriesTotal.Set(float64(count))
}
