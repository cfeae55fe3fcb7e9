package schema

// CreateBookRequest is the payload for creating a book.
type CreateBookRequest struct {
	Title  string  `json:"title"            validate:"required,max=500"`
	Author *string `json:"author,omitempty" validate:"omitempty,max=500"`
}

// UpdateBookRequest is a partial patch of a book.
type UpdateBookRequest struct {
	Title  *string `json:"title,omitempty"  validate:"omitempty,max=500"`
	Author *string `json:"author,omitempty" validate:"omitempty,max=500"`
	Status *string `json:"status,omitempty"`
}

// CreateNoteRequest is the payload for capturing a note.
type CreateNoteRequest struct {
	BookID       string  `json:"bookId"                 validate:"required,uuid"`
	Title        string  `json:"title"                  validate:"required,max=500"`
	Page         string  `json:"page"                   validate:"required,max=100"`
	Context      *string `json:"context,omitempty"      validate:"omitempty,max=10000"`
	Capture      *string `json:"capture,omitempty"      validate:"omitempty,max=10000"`
	Spark        *string `json:"spark,omitempty"        validate:"omitempty,max=10000"`
	LinkedNoteID *string `json:"linkedNoteId,omitempty"`
}

// UpdateNoteRequest is a partial patch of a note. An empty linkedNoteId
// clears the link.
type UpdateNoteRequest struct {
	Title        *string `json:"title,omitempty"        validate:"omitempty,max=500"`
	Page         *string `json:"page,omitempty"         validate:"omitempty,max=100"`
	Context      *string `json:"context,omitempty"      validate:"omitempty,max=10000"`
	Capture      *string `json:"capture,omitempty"      validate:"omitempty,max=10000"`
	Spark        *string `json:"spark,omitempty"        validate:"omitempty,max=10000"`
	LinkedNoteID *string `json:"linkedNoteId,omitempty"`
	Status       *string `json:"status,omitempty"`
}

// NoteFilters narrows a note listing.
type NoteFilters struct {
	BookID *string `json:"bookId,omitempty"`
	Status *string `json:"status,omitempty"`
}

// CreateCardRequest is the payload for creating a card directly. When
// linkedNoteId is set the referenced note is promoted along with it.
type CreateCardRequest struct {
	BookID           string            `json:"bookId"                     validate:"required,uuid"`
	Title            string            `json:"title"                      validate:"required,max=500"`
	Page             string            `json:"page"                       validate:"required,max=100"`
	Context          *string           `json:"context,omitempty"          validate:"omitempty,max=10000"`
	Capture          *string           `json:"capture,omitempty"          validate:"omitempty,max=10000"`
	Spark            *string           `json:"spark,omitempty"            validate:"omitempty,max=10000"`
	LinkedNoteID     *string           `json:"linkedNoteId,omitempty"`
	RetentionAnswers map[string]string `json:"retentionAnswers,omitempty" validate:"omitempty,max=100,dive,keys,required,max=500,endkeys,max=10000"`
	BucketIDs        []string          `json:"bucketIds,omitempty"        validate:"omitempty,max=100,dive,uuid"`
}

// UpdateCardRequest is a partial patch of a card. RetentionAnswers and
// BucketIDs, when present, replace the current values wholesale.
type UpdateCardRequest struct {
	Title            *string           `json:"title,omitempty"            validate:"omitempty,max=500"`
	Page             *string           `json:"page,omitempty"             validate:"omitempty,max=100"`
	Context          *string           `json:"context,omitempty"          validate:"omitempty,max=10000"`
	Capture          *string           `json:"capture,omitempty"          validate:"omitempty,max=10000"`
	Spark            *string           `json:"spark,omitempty"            validate:"omitempty,max=10000"`
	RetentionAnswers map[string]string `json:"retentionAnswers,omitempty" validate:"omitempty,max=100,dive,keys,required,max=500,endkeys,max=10000"`
	BucketIDs        []string          `json:"bucketIds,omitempty"        validate:"omitempty,max=100,dive,uuid"`
}

// PromoteNoteRequest carries card fields for a promotion. Every omitted
// field falls back to the note's value.
type PromoteNoteRequest struct {
	Title            *string           `json:"title,omitempty"            validate:"omitempty,max=500"`
	Page             *string           `json:"page,omitempty"             validate:"omitempty,max=100"`
	Context          *string           `json:"context,omitempty"          validate:"omitempty,max=10000"`
	Capture          *string           `json:"capture,omitempty"          validate:"omitempty,max=10000"`
	Spark            *string           `json:"spark,omitempty"            validate:"omitempty,max=10000"`
	RetentionAnswers map[string]string `json:"retentionAnswers,omitempty" validate:"omitempty,max=100,dive,keys,required,max=500,endkeys,max=10000"`
	BucketIDs        []string          `json:"bucketIds,omitempty"        validate:"omitempty,max=100,dive,uuid"`
}

// CardFilters are the list-query parameters for cards. Search matches
// title, capture and spark case-insensitively.
type CardFilters struct {
	Search   *string `json:"search,omitempty"   validate:"omitempty,max=200"`
	BucketID *string `json:"bucketId,omitempty" validate:"omitempty,uuid"`
	BookID   *string `json:"bookId,omitempty"   validate:"omitempty,uuid"`
	Limit    *int    `json:"limit,omitempty"`
	Offset   *int    `json:"offset,omitempty"`
}

// CreateBucketRequest is the payload for creating a bucket.
type CreateBucketRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// UpdateBucketRequest renames a bucket.
type UpdateBucketRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// UpdateSettingsRequest replaces the ordered retention question list.
type UpdateSettingsRequest struct {
	RetentionQuestions []string `json:"retentionQuestions" validate:"required,max=50,dive,required,max=500"`
}
