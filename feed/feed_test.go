package feed

import (
	"strconv"
	"testing"

	"github.com/Luismorlan/postboard/model"
	"github.com/stretchr/testify/assert"
)

func makePosts(n int) []model.Post {
	posts := make([]model.Post, n)
	for i := range posts {
		posts[i] = model.Post{Id: strconv.Itoa(i)}
	}
	return posts
}

func TestPaginateFirstPage(t *testing.T) {
	page := Paginate(makePosts(25), 1)

	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 10, len(page.Posts))
	assert.Equal(t, "0", page.Posts[0].Id)
	assert.Equal(t, 25, page.TotalItems)
	assert.Equal(t, 3, page.TotalPages)
	assert.False(t, page.HasPrev)
	assert.True(t, page.HasNext)
}

func TestPaginateLastPageIsPartial(t *testing.T) {
	page := Paginate(makePosts(25), 3)

	assert.Equal(t, 3, page.Number)
	assert.Equal(t, 5, len(page.Posts))
	assert.Equal(t, "20", page.Posts[0].Id)
	assert.True(t, page.HasPrev)
	assert.False(t, page.HasNext)
}

func TestPaginateClampsOutOfRange(t *testing.T) {
	// Past the end clamps to the last page.
	page := Paginate(makePosts(25), 99)
	assert.Equal(t, 3, page.Number)
	assert.Equal(t, 5, len(page.Posts))

	// Zero and negative clamp to the first page.
	page = Paginate(makePosts(25), 0)
	assert.Equal(t, 1, page.Number)
	page = Paginate(makePosts(25), -7)
	assert.Equal(t, 1, page.Number)
}

func TestPaginateEmptyList(t *testing.T) {
	page := Paginate(nil, 5)

	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 0, len(page.Posts))
	assert.Equal(t, 0, page.TotalItems)
	assert.Equal(t, 1, page.TotalPages)
	assert.False(t, page.HasPrev)
	assert.False(t, page.HasNext)
}

func TestPaginateExactMultiple(t *testing.T) {
	page := Paginate(makePosts(20), 2)

	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 10, len(page.Posts))
	assert.False(t, page.HasNext)
}
