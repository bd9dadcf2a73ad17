package posts

import (
	"cmp"
	"slices"
)

// SortByCreation orders posts by creation_time, breaking ties on post_id
func SortByCreation(list []*Post, newestFirst bool) {
	slices.SortStableFunc(list, func(a, b *Post) int {
		c := a.CreatedAt().Compare(b.CreatedAt())
		if c == 0 {
			c = cmp.Compare(a.CreationTime, b.CreationTime)
		}
		if c == 0 {
			c = cmp.Compare(a.PostID, b.PostID)
		}
		if newestFirst {
			return -c
		}
		return c
	})
}

// Paginate returns the prefix of list covering pages 1..page.
// A page is servable once at least pageSize*(page-1)+1 items exist; the
// bounds are compared by division so huge page numbers cannot overflow.
func Paginate(list []*Post, page, pageSize int, resource string) ([]*Post, error) {
	if page < 1 {
		return nil, NewValidationError("page", "page must be a positive integer")
	}
	if len(list) == 0 {
		return nil, NewNotFoundError(resource, "no items")
	}
	if page-1 > (len(list)-1)/pageSize {
		return nil, &RangeError{Page: page, PageSize: pageSize, Total: len(list)}
	}
	end := len(list)
	if page <= len(list)/pageSize {
		end = pageSize * page
	}
	return list[:end], nil
}
