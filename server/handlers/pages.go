// Package handlers translates HTTP requests into repository operations. Page
// handlers return JSON view models for the template renderer (an external
// collaborator) and carry the flow semantics in status codes and redirects;
// the API handlers implement the programmatic posts resource.
package handlers

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/Luismorlan/postboard/feed"
	"github.com/Luismorlan/postboard/filestore"
	"github.com/Luismorlan/postboard/model"
	"github.com/Luismorlan/postboard/policy"
	"github.com/Luismorlan/postboard/server/middlewares"
	"github.com/Luismorlan/postboard/store"
	. "github.com/Luismorlan/postboard/utils/log"
	"github.com/gin-gonic/gin"
)

type PageHandler struct {
	Store  *store.Store
	Images filestore.ImageStore
}

func NewPageHandler(s *store.Store, images filestore.ImageStore) *PageHandler {
	return &PageHandler{Store: s, Images: images}
}

// RegisterRoutes wires the page routes. Static segments (new, group, follow)
// must be registered alongside the username wildcards, which gin's router
// resolves by static-first priority.
func (h *PageHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/", h.Index)
	router.GET("/new/", middlewares.RequireLogin(), h.NewPostForm)
	router.POST("/new/", middlewares.RequireLogin(), h.NewPost)
	router.GET("/group/:slug/", h.GroupPosts)
	router.GET("/follow/", middlewares.RequireLogin(), h.FollowIndex)
	router.GET("/:username/", h.Profile)
	router.GET("/:username/follow/", middlewares.RequireLogin(), h.ProfileFollow)
	router.POST("/:username/follow/", middlewares.RequireLogin(), h.ProfileFollow)
	router.GET("/:username/unfollow/", middlewares.RequireLogin(), h.ProfileUnfollow)
	router.POST("/:username/unfollow/", middlewares.RequireLogin(), h.ProfileUnfollow)
	router.GET("/:username/:post_id/", h.PostView)
	router.GET("/:username/:post_id/edit", h.EditPostForm)
	router.POST("/:username/:post_id/edit", h.EditPost)
	router.POST("/:username/:post_id/comment", middlewares.RequireLogin(), h.AddComment)
	router.POST("/:username/:post_id/delete", h.DeletePost)
}

// pageNumber reads the ?page query param, defaulting to the first page. A
// non-numeric value behaves like an out-of-range one and ends up clamped.
func pageNumber(c *gin.Context) int {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil {
		return 1
	}
	return page
}

func notFoundPage(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"path": c.Request.URL.Path})
}

// Index is the global feed: every post, newest first.
func (h *PageHandler) Index(c *gin.Context) {
	posts, err := h.Store.ListAllPosts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": feed.Paginate(posts, pageNumber(c))})
}

// GroupPosts is the per-group feed, 404 when the slug is unknown.
func (h *PageHandler) GroupPosts(c *gin.Context) {
	group, posts, err := h.Store.ListPostsByGroup(c.Param("slug"))
	if err == store.ErrNotFound {
		notFoundPage(c)
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"group": group,
		"page":  feed.Paginate(posts, pageNumber(c)),
	})
}

// FollowIndex is the personalized feed: posts from every followed author.
func (h *PageHandler) FollowIndex(c *gin.Context) {
	actor := middlewares.CurrentUser(c)
	posts, err := h.Store.ListPostsByFollowedAuthors(actor.Id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": feed.Paginate(posts, pageNumber(c))})
}

// Profile is an author's feed plus the facts the profile header shows: total
// post count and whether the viewer follows the author (always false for
// anonymous viewers).
func (h *PageHandler) Profile(c *gin.Context) {
	author, posts, err := h.Store.ListPostsByAuthor(c.Param("username"))
	if err == store.ErrNotFound {
		notFoundPage(c)
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
		return
	}

	following := false
	if actor := middlewares.CurrentUser(c); actor != nil {
		var followErr error
		following, followErr = h.Store.FollowExists(actor.Id, author.Id)
		if followErr != nil {
			// Render the profile anyway; the header just shows "follow".
			Log.Warn("fail to check follow state for profile ", author.Username, ": ", followErr)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"author":     author,
		"post_count": len(posts),
		"following":  following,
		"page":       feed.Paginate(posts, pageNumber(c)),
	})
}

// PostView is the post detail page: the post, its author's post count, and
// the comments newest first.
func (h *PageHandler) PostView(c *gin.Context) {
	post, err := h.Store.GetPost(c.Param("username"), c.Param("post_id"))
	if err == store.ErrNotFound {
		notFoundPage(c)
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
		return
	}

	comments, err := h.Store.ListCommentsForPost(post.Id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
		return
	}
	postCount, err := h.Store.CountPostsByAuthor(post.AuthorID)
	if err != nil {
		Log.Warn("fail to count posts for author ", post.Author.Username, ": ", err)
	}

	imageURL := ""
	if post.ImageKey != "" {
		imageURL = h.Images.URL(post.ImageKey)
	}

	c.JSON(http.StatusOK, gin.H{
		"post":       post,
		"image_url":  imageURL,
		"post_count": postCount,
		"comments":   comments,
	})
}

// NewPostForm returns the empty submission form view.
func (h *PageHandler) NewPostForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"form": gin.H{"fields": []string{"group", "text", "image"}}})
}

// postForm reads the shared new/edit submission: text, optional group slug,
// optional image upload.
func (h *PageHandler) postForm(c *gin.Context) (text string, groupID *string, image *multipart.FileHeader, fieldErrors map[string]string) {
	fieldErrors = map[string]string{}

	text = c.PostForm("text")
	if text == "" {
		fieldErrors["text"] = "this field is required"
	}

	if slug := c.PostForm("group"); slug != "" {
		group, err := h.Store.GetGroupBySlug(slug)
		if err != nil {
			fieldErrors["group"] = "unknown group"
		} else {
			groupID = &group.Id
		}
	}

	// The image field is optional; a missing file is not an error.
	image, _ = c.FormFile("image")
	return
}

func (h *PageHandler) saveImage(image *multipart.FileHeader) (string, error) {
	f, err := image.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	return h.Images.Save(image.Filename, f)
}

// NewPost creates a post owned by the acting user and redirects to the index.
// Validation failure re-renders the form: 400 with field errors attached.
func (h *PageHandler) NewPost(c *gin.Context) {
	actor := middlewares.CurrentUser(c)

	text, groupID, image, fieldErrors := h.postForm(c)
	imageKey := ""
	if image != nil {
		key, err := h.saveImage(image)
		if err != nil {
			fieldErrors["image"] = "corrupt image payload"
		}
		imageKey = key
	}
	if len(fieldErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors})
		return
	}

	post, err := h.Store.CreatePost(actor.Id, text, groupID, imageKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
		return
	}

	Log.Info("user ", actor.Username, " created post ", post.Id)
	c.Redirect(http.StatusFound, "/")
}

func postURL(post *model.Post) string {
	return "/" + post.Author.Username + "/" + post.Id + "/"
}

// EditPostForm returns the pre-filled edit form. A non-author never sees the
// form: same silent redirect to the post page as the submit path.
func (h *PageHandler) EditPostForm(c *gin.Context) {
	post, err := h.Store.GetPost(c.Param("username"), c.Param("post_id"))
	if err == store.ErrNotFound {
		notFoundPage(c)
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
		return
	}

	if !policy.CanEditOrDelete(middlewares.CurrentUser(c), post) {
		c.Redirect(http.StatusFound, postURL(post))
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post})
}

// EditPost updates text/group/image. Author and pub_date are immutable no
// matter what is submitted. Non-authors are silently redirected to the post's
// own page rather than shown an error.
func (h *PageHandler) EditPost(c *gin.Context) {
	post, err := h.Store.GetPost(c.Param("username"), c.Param("post_id"))
	if err == store.ErrNotFound {
		notFoundPage(c)
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
		return
	}

	actor := middlewares.CurrentUser(c)
	if !policy.CanEditOrDelete(actor, post) {
		c.Redirect(http.StatusFound, postURL(post))
		return
	}

	text, groupID, image, fieldErrors := h.postForm(c)
	imageKey := post.ImageKey
	if image != nil {
		key, err := h.saveImage(image)
		if err != nil {
			fieldErrors["image"] = "corrupt image payload"
		}
		imageKey = key
	}
	if len(fieldErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors, "post": post})
		return
	}

	if err := h.Store.UpdatePost(post, text, groupID, imageKey); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
		return
	}

	Log.Info("user ", actor.Username, " edited post ", post.Id)
	c.Redirect(http.StatusFound, postURL(post))
}

// DeletePost removes the post and its comments. Non-authors are redirected to
// the index; the author lands on their own profile afterwards.
func (h *PageHandler) DeletePost(c *gin.Context) {
	post, err := h.Store.GetPost(c.Param("username"), c.Param("post_id"))
	if err == store.ErrNotFound {
		notFoundPage(c)
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
		return
	}

	actor := middlewares.CurrentUser(c)
	if !policy.CanEditOrDelete(actor, post) {
		c.Redirect(http.StatusFound, "/")
		return
	}

	if err := h.Store.DeletePost(post); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
		return
	}

	Log.Info("user ", actor.Username, " deleted post ", post.Id)
	c.Redirect(http.StatusFound, "/"+post.Author.Username+"/")
}

// AddComment attaches a comment to the post and redirects back to it. An
// empty comment is dropped on the floor, mirroring the submit-and-return
// behavior of the comment form.
func (h *PageHandler) AddComment(c *gin.Context) {
	post, err := h.Store.GetPost(c.Param("username"), c.Param("post_id"))
	if err == store.ErrNotFound {
		notFoundPage(c)
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
		return
	}

	actor := middlewares.CurrentUser(c)
	if policy.CanComment(actor) {
		if text := c.PostForm("text"); text != "" {
			if _, err := h.Store.CreateComment(post.Id, actor.Id, text); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
				return
			}
		}
	}
	c.Redirect(http.StatusFound, postURL(post))
}

// ProfileFollow makes the acting user follow the profile's author. Self
// follow and duplicate follow are idempotent: same redirect, no new row.
func (h *PageHandler) ProfileFollow(c *gin.Context) {
	actor := middlewares.CurrentUser(c)

	target, err := h.Store.GetUserByUsername(c.Param("username"))
	if err == store.ErrNotFound {
		notFoundPage(c)
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
		return
	}
	profileURL := "/" + target.Username + "/"

	alreadyFollowing, err := h.Store.FollowExists(actor.Id, target.Id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
		return
	}

	if !policy.CanFollow(actor, target, alreadyFollowing) {
		c.Redirect(http.StatusFound, profileURL)
		return
	}

	// A concurrent duplicate loses against the composite key and surfaces
	// ErrConflict; the page flow treats that as the idempotent success.
	if err := h.Store.CreateFollow(actor.Id, target.Id); err != nil && err != store.ErrConflict {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
		return
	}

	Log.Info("user ", actor.Username, " followed ", target.Username)
	c.Redirect(http.StatusFound, profileURL)
}

// ProfileUnfollow removes the follow relation; unfollowing someone never
// followed is a no-op with the same redirect.
func (h *PageHandler) ProfileUnfollow(c *gin.Context) {
	actor := middlewares.CurrentUser(c)

	target, err := h.Store.GetUserByUsername(c.Param("username"))
	if err == store.ErrNotFound {
		notFoundPage(c)
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
		return
	}

	if err := h.Store.DeleteFollow(actor.Id, target.Id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
		return
	}
	c.Redirect(http.StatusFound, "/"+target.Username+"/")
}
