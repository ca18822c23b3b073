package handlers

import (
	"net/http"
	"time"

	"github.com/Luismorlan/postboard/auth"
	"github.com/Luismorlan/postboard/model"
	"github.com/Luismorlan/postboard/policy"
	"github.com/Luismorlan/postboard/server/middlewares"
	"github.com/Luismorlan/postboard/store"
	. "github.com/Luismorlan/postboard/utils/log"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// APIHandler implements the programmatic posts resource under /api/v1.
type APIHandler struct {
	Store *store.Store
}

func NewAPIHandler(s *store.Store) *APIHandler {
	return &APIHandler{Store: s}
}

// RegisterRoutes wires the API. Every posts route sits behind the token
// middleware: an unauthenticated request is rejected before any handler
// logic. Token issuance itself is the one unauthenticated endpoint.
func (h *APIHandler) RegisterRoutes(router *gin.Engine, db *gorm.DB) {
	api := router.Group("/api/v1")
	api.POST("/api-token-auth/", h.ObtainAuthToken)

	posts := api.Group("/posts", middlewares.TokenAuth(db))
	posts.GET("/", h.ListPosts)
	posts.POST("/", h.CreatePost)
	posts.GET("/:id/", h.GetPost)
	posts.PUT("/:id/", h.UpdatePost)
	posts.PATCH("/:id/", h.UpdatePost)
	posts.DELETE("/:id/", h.DeletePost)
}

// postResource is the serialization contract: exactly these fields, with
// author always the owner's username. The field list is declared here
// statically, not derived from the model by reflection.
type postResource struct {
	Id      string `json:"id"`
	Text    string `json:"text"`
	Author  string `json:"author"`
	Image   string `json:"image,omitempty"`
	PubDate string `json:"pub_date"`
}

func serializePost(post *model.Post) postResource {
	return postResource{
		Id:      post.Id,
		Text:    post.Text,
		Author:  post.Author.Username,
		Image:   post.ImageKey,
		PubDate: post.PubDate.Format(time.RFC3339),
	}
}

// postInput is the writable surface of the resource. Any client-supplied
// author field is simply not part of it: ownership always comes from the
// authenticated requester.
type postInput struct {
	Text  *string `json:"text"`
	Image *string `json:"image"`
}

// ListPosts returns every post, newest first.
func (h *APIHandler) ListPosts(c *gin.Context) {
	posts, err := h.Store.ListAllPosts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
		return
	}

	resources := make([]postResource, 0, len(posts))
	for i := range posts {
		resources = append(resources, serializePost(&posts[i]))
	}
	c.JSON(http.StatusOK, resources)
}

// CreatePost creates a post owned by the authenticated requester and responds
// 201 with the created resource, or 400 with field-level errors.
func (h *APIHandler) CreatePost(c *gin.Context) {
	actor := middlewares.CurrentUser(c)

	var input postInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"non_field_errors": "malformed request body"})
		return
	}
	if input.Text == nil || *input.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"text": "this field is required"})
		return
	}

	imageKey := ""
	if input.Image != nil {
		imageKey = *input.Image
	}

	post, err := h.Store.CreatePost(actor.Id, *input.Text, nil, imageKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
		return
	}

	Log.Info("api: user ", actor.Username, " created post ", post.Id)
	c.JSON(http.StatusCreated, serializePost(post))
}

// GetPost returns one resource, or 404 with an empty body.
func (h *APIHandler) GetPost(c *gin.Context) {
	post, err := h.Store.GetPostByID(c.Param("id"))
	if err == store.ErrNotFound {
		c.Status(http.StatusNotFound)
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, serializePost(post))
}

// UpdatePost partially updates a post. Ownership is required (403 with empty
// body otherwise); omitted fields keep their value; author and pub_date can
// never change.
func (h *APIHandler) UpdatePost(c *gin.Context) {
	post, err := h.Store.GetPostByID(c.Param("id"))
	if err == store.ErrNotFound {
		c.Status(http.StatusNotFound)
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
		return
	}

	actor := middlewares.CurrentUser(c)
	if !policy.CanMutateViaAPI(actor, post) {
		c.Status(http.StatusForbidden)
		return
	}

	var input postInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"non_field_errors": "malformed request body"})
		return
	}

	text := post.Text
	if input.Text != nil {
		text = *input.Text
	}
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"text": "this field is required"})
		return
	}
	imageKey := post.ImageKey
	if input.Image != nil {
		imageKey = *input.Image
	}

	if err := h.Store.UpdatePost(post, text, post.GroupID, imageKey); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
		return
	}

	c.JSON(http.StatusOK, serializePost(post))
}

// DeletePost removes the post (and its comments) and responds 204. Ownership
// required, 403 with empty body otherwise.
func (h *APIHandler) DeletePost(c *gin.Context) {
	post, err := h.Store.GetPostByID(c.Param("id"))
	if err == store.ErrNotFound {
		c.Status(http.StatusNotFound)
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
		return
	}

	actor := middlewares.CurrentUser(c)
	if !policy.CanMutateViaAPI(actor, post) {
		c.Status(http.StatusForbidden)
		return
	}

	if err := h.Store.DeletePost(post); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
		return
	}

	Log.Info("api: user ", actor.Username, " deleted post ", post.Id)
	c.Status(http.StatusNoContent)
}

type tokenAuthInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ObtainAuthToken exchanges a username/password pair for an opaque token.
func (h *APIHandler) ObtainAuthToken(c *gin.Context) {
	var input tokenAuthInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"non_field_errors": "malformed request body"})
		return
	}

	token, err := auth.IssueToken(h.Store.DB(), input.Username, input.Password)
	if err == auth.ErrInvalidCredentials {
		c.JSON(http.StatusBadRequest, gin.H{
			"non_field_errors": "unable to log in with provided credentials",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
