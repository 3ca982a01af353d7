package domain

import "time"

// Blog is a published post. TotalBookmarks counts reading-list entries across
// all users and is maintained alongside the reading_list table.
type Blog struct {
	ID             string    `json:"id"`
	Slug           string    `json:"slug"`
	OwnerID        string    `json:"ownerId"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	BannerURL      string    `json:"bannerURL"`
	TotalBookmarks int       `json:"totalBookmarks"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ReadingListBlog is one entry of a user's reading list: the bookmarked blog
// plus owner info and the estimated reading time, as listed on the page.
type ReadingListBlog struct {
	Blog
	OwnerUsername  string    `json:"ownerUsername"`
	OwnerName      string    `json:"ownerName"`
	OwnerPhotoURL  string    `json:"ownerPhotoURL"`
	ReadingTimeMin int       `json:"readingTime"`
	AddedAt        time.Time `json:"addedAt"`
}

// ReadingListPage is one page of a user's reading list.
type ReadingListPage struct {
	Blogs      []ReadingListBlog `json:"blogs"`
	Page       int               `json:"page"`
	TotalBlogs int               `json:"totalBlogs"`
	TotalPages int               `json:"totalPages"`
}
