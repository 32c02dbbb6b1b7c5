// Package resilience provides fault tolerance for calls into the story store.
//
// The circuitbreaker subpackage wraps any repository.StoryRepository so a
// failing database is short-circuited instead of being hit by every request.
// Outcomes that describe the data (not found, malformed id, duplicate title)
// never count as failures.
//
// Usage Example:
//
//	repo := circuitbreaker.NewRepository(postgres.NewStoryRepo(db), circuitbreaker.StoreConfig("postgres"))
//	svc := &story.Service{Repo: repo}
package resilience
