package models

// Interest is a knowledge-graph-derived tag used to filter feed content.
// The feed view only ever reads interests; ingestion maintains the weights.
type Interest struct {
	ID     uint   `json:"-" gorm:"primaryKey"`
	Name   string `json:"name" gorm:"uniqueIndex"`
	Weight int64  `json:"weight"`
}

// RefreshStats summarizes one platform refresh run.
type RefreshStats struct {
	PostsFetched   int   `json:"posts_fetched"`
	PostsNew       int   `json:"posts_new"`
	InterestsCount int64 `json:"interests_count"`
}
