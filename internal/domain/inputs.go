package domain

type CreatePostInput struct {
	Title    string
	Content  string
	AuthorID string
}

// CreatePostRecord is what a repository persists; the service fills in the id.
type CreatePostRecord struct {
	ID       string
	Title    string
	Content  string
	AuthorID string
}

type UpdatePostInput struct {
	ID      string
	Title   string
	Content string
}
