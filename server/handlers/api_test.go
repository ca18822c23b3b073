package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/Luismorlan/postboard/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIRejectsMissingToken(t *testing.T) {
	ts := newTestServer(t)

	// No Authorization header at all.
	w := ts.apiRequest(http.MethodGet, "/api/v1/posts/", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// A token that was never issued.
	w = ts.apiRequest(http.MethodPost, "/api/v1/posts/", `{"text":"x"}`, "bogus")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// The rejection happens before create logic: nothing was written.
	posts, err := ts.store.ListAllPosts()
	require.NoError(t, err)
	assert.Equal(t, 0, len(posts))
}

func TestAPIObtainAuthToken(t *testing.T) {
	ts := newTestServer(t)
	utils.TestCreateUser(t, ts.db, "alice")

	body := fmt.Sprintf(`{"username":"alice","password":"%s"}`, utils.TestPassword)
	w := ts.apiRequest(http.MethodPost, "/api/v1/api-token-auth/", body, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)

	// The issued token authenticates API requests.
	w = ts.apiRequest(http.MethodGet, "/api/v1/posts/", "", resp.Token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPIObtainAuthTokenBadCredentials(t *testing.T) {
	ts := newTestServer(t)
	utils.TestCreateUser(t, ts.db, "alice")

	w := ts.apiRequest(http.MethodPost, "/api/v1/api-token-auth/", `{"username":"alice","password":"wrong"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAPICreatePostForcesAuthor(t *testing.T) {
	ts := newTestServer(t)
	alice := utils.TestCreateUser(t, ts.db, "alice")
	utils.TestCreateUser(t, ts.db, "bob")
	token := utils.TestCreateToken(t, ts.db, alice)

	// The client-supplied author is ignored and overwritten with the
	// authenticated requester.
	w := ts.apiRequest(http.MethodPost, "/api/v1/posts/", `{"text":"x","author":"bob"}`, token)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Id      string `json:"id"`
		Text    string `json:"text"`
		Author  string `json:"author"`
		PubDate string `json:"pub_date"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "x", resp.Text)
	assert.Equal(t, "alice", resp.Author)
	assert.NotEmpty(t, resp.Id)
	assert.NotEmpty(t, resp.PubDate)

	post, err := ts.store.GetPostByID(resp.Id)
	require.NoError(t, err)
	assert.Equal(t, alice.Id, post.AuthorID)
}

func TestAPICreatePostValidation(t *testing.T) {
	ts := newTestServer(t)
	alice := utils.TestCreateUser(t, ts.db, "alice")
	token := utils.TestCreateToken(t, ts.db, alice)

	w := ts.apiRequest(http.MethodPost, "/api/v1/posts/", `{}`, token)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var fieldErrors map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fieldErrors))
	assert.Contains(t, fieldErrors, "text")
}

func TestAPIListPosts(t *testing.T) {
	ts := newTestServer(t)
	alice := utils.TestCreateUser(t, ts.db, "alice")
	token := utils.TestCreateToken(t, ts.db, alice)

	_, err := ts.store.CreatePost(alice.Id, "one", nil, "")
	require.NoError(t, err)
	_, err = ts.store.CreatePost(alice.Id, "two", nil, "")
	require.NoError(t, err)

	w := ts.apiRequest(http.MethodGet, "/api/v1/posts/", "", token)
	require.Equal(t, http.StatusOK, w.Code)

	var resp []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 2, len(resp))
	assert.Equal(t, "alice", resp[0]["author"])
}

func TestAPIGetPost(t *testing.T) {
	ts := newTestServer(t)
	alice := utils.TestCreateUser(t, ts.db, "alice")
	token := utils.TestCreateToken(t, ts.db, alice)

	post, err := ts.store.CreatePost(alice.Id, "hello", nil, "")
	require.NoError(t, err)

	w := ts.apiRequest(http.MethodGet, "/api/v1/posts/"+post.Id+"/", "", token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.apiRequest(http.MethodGet, "/api/v1/posts/no-such-id/", "", token)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 0, w.Body.Len())
}

func TestAPIUpdatePostOwnershipAndImmutability(t *testing.T) {
	ts := newTestServer(t)
	alice := utils.TestCreateUser(t, ts.db, "alice")
	bob := utils.TestCreateUser(t, ts.db, "bob")
	bobToken := utils.TestCreateToken(t, ts.db, bob)
	aliceToken := utils.TestCreateToken(t, ts.db, alice)

	post, err := ts.store.CreatePost(alice.Id, "original", nil, "")
	require.NoError(t, err)
	originalPubDate := post.PubDate

	// Non-author: 403, empty body, post untouched.
	w := ts.apiRequest(http.MethodPatch, "/api/v1/posts/"+post.Id+"/", `{"text":"hacked"}`, bobToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, 0, w.Body.Len())

	got, err := ts.store.GetPostByID(post.Id)
	require.NoError(t, err)
	assert.Equal(t, "original", got.Text)

	// Author: 200, text changes, author and pub_date do not.
	w = ts.apiRequest(http.MethodPatch, "/api/v1/posts/"+post.Id+"/", `{"text":"edited"}`, aliceToken)
	require.Equal(t, http.StatusOK, w.Code)

	got, err = ts.store.GetPostByID(post.Id)
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Text)
	assert.Equal(t, alice.Id, got.AuthorID)
	assert.True(t, originalPubDate.Equal(got.PubDate))

	// Blank text is a validation failure.
	w = ts.apiRequest(http.MethodPut, "/api/v1/posts/"+post.Id+"/", `{"text":""}`, aliceToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAPIDeletePost(t *testing.T) {
	ts := newTestServer(t)
	alice := utils.TestCreateUser(t, ts.db, "alice")
	bob := utils.TestCreateUser(t, ts.db, "bob")
	bobToken := utils.TestCreateToken(t, ts.db, bob)
	aliceToken := utils.TestCreateToken(t, ts.db, alice)

	post, err := ts.store.CreatePost(alice.Id, "hello", nil, "")
	require.NoError(t, err)

	w := ts.apiRequest(http.MethodDelete, "/api/v1/posts/"+post.Id+"/", "", bobToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = ts.apiRequest(http.MethodDelete, "/api/v1/posts/"+post.Id+"/", "", aliceToken)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = ts.apiRequest(http.MethodGet, "/api/v1/posts/"+post.Id+"/", "", aliceToken)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
