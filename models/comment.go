package models

// Comment is a comment embedded in a feed item. Author and the like counter
// hold user ids in the stored form.
type Comment struct {
	Author      int    `json:"author"`
	Contents    string `json:"contents"`
	PostDate    int64  `json:"postDate"`
	LikeCounter []int  `json:"likeCounter"`
}

// HasLike reports whether userID is present in the comment's like counter.
func (c *Comment) HasLike(userID int) bool {
	for _, id := range c.LikeCounter {
		if id == userID {
			return true
		}
	}
	return false
}

// ResolvedComment is the response form of Comment. Only the author is
// resolved; the comment-level like counter stays raw ids.
type ResolvedComment struct {
	Author      User   `json:"author"`
	Contents    string `json:"contents"`
	PostDate    int64  `json:"postDate"`
	LikeCounter []int  `json:"likeCounter"`
}
