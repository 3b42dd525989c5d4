package models

// FeedItemTypeStatusUpdate is the only feed item type this backend stores.
const FeedItemTypeStatusUpdate = "statusUpdate"

// StatusUpdate is the contents block of a stored feed item. Author and the
// like counter hold user ids, never embedded users.
type StatusUpdate struct {
	Author      int    `json:"author"`
	PostDate    int64  `json:"postDate"`
	Location    string `json:"location"`
	Contents    string `json:"contents"`
	LikeCounter []int  `json:"likeCounter"`
}

// FeedItem is a stored feed item document. LikeCounter is an
// insertion-ordered set of user ids. Comments are embedded and addressed by
// index; they have no ids of their own.
type FeedItem struct {
	ID          int          `json:"_id"`
	Type        string       `json:"type"`
	LikeCounter []int        `json:"likeCounter"`
	Contents    StatusUpdate `json:"contents"`
	Comments    []Comment    `json:"comments"`
}

// DocID returns the document id.
func (i *FeedItem) DocID() int { return i.ID }

// SetDocID sets the store-assigned document id.
func (i *FeedItem) SetDocID(id int) { i.ID = id }

// HasLike reports whether userID is present in the item's like counter.
func (i *FeedItem) HasLike(userID int) bool {
	for _, id := range i.LikeCounter {
		if id == userID {
			return true
		}
	}
	return false
}

// ResolvedStatusUpdate is the response form of StatusUpdate: the author id is
// replaced by the user document. The inner like counter stays raw; only the
// item-level counter is resolved.
type ResolvedStatusUpdate struct {
	Author      User   `json:"author"`
	PostDate    int64  `json:"postDate"`
	Location    string `json:"location"`
	Contents    string `json:"contents"`
	LikeCounter []int  `json:"likeCounter"`
}

// ResolvedFeedItem is the response form of FeedItem with author and like
// references expanded into user documents.
type ResolvedFeedItem struct {
	ID          int                  `json:"_id"`
	Type        string               `json:"type"`
	LikeCounter []User               `json:"likeCounter"`
	Contents    ResolvedStatusUpdate `json:"contents"`
	Comments    []ResolvedComment    `json:"comments"`
}

// ResolvedFeed is the response form of Feed with every item resolved, in
// feed order.
type ResolvedFeed struct {
	ID       int                `json:"_id"`
	Contents []ResolvedFeedItem `json:"contents"`
}
