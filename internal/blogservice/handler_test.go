package blogservice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sushihentaime/blogfiles/internal/common"
	"github.com/sushihentaime/blogfiles/internal/mediaservice"
	"github.com/sushihentaime/blogfiles/internal/store"
)

type mockProducer struct {
	mock.Mock
}

func (m *mockProducer) Publish(ctx context.Context, msg []byte, key common.BindingKey, exchange common.Exchange) error {
	args := m.Called(ctx, msg, key, exchange)
	return args.Error(0)
}

func strptr(s string) *string {
	return &s
}

// testClock returns a clock that moves forward one second per call.
func testClock() func() time.Time {
	var mu sync.Mutex
	t := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}

func setupService(t *testing.T) (*BlogService, string) {
	t.Helper()

	publicDir := t.TempDir()
	s := NewBlogService(store.NewMemoryStore(), mediaservice.NewDiskStorage(publicDir, "http://localhost:3002"), nil, nil)
	s.now = testClock()

	return s, publicDir
}

func testPostRequest() *CreateBlogPostRequest {
	return &CreateBlogPostRequest{
		Category: "c",
		Title:    "A",
		Author:   "x",
		Content:  "B",
	}
}

func TestCreateBlogPost(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()

	post, err := s.CreateBlogPost(ctx, testPostRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, post.ID)
	assert.Equal(t, "A", post.Title)
	assert.Equal(t, "B", post.Content)
	assert.Equal(t, "c", post.Category)
	assert.Equal(t, "x", post.Author)
	assert.Equal(t, post.CreatedAt, post.UpdatedAt)
	assert.NotNil(t, post.Comments)
	assert.Empty(t, post.Comments)

	got, err := s.GetBlogPostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post, got)
}

func TestCreateBlogPostValidation(t *testing.T) {
	s, _ := setupService(t)

	testCases := []struct {
		name   string
		modify func(req *CreateBlogPostRequest)
		field  string
	}{
		{
			name:   "missing title",
			modify: func(req *CreateBlogPostRequest) { req.Title = "" },
			field:  "title",
		},
		{
			name:   "missing content",
			modify: func(req *CreateBlogPostRequest) { req.Content = "" },
			field:  "content",
		},
		{
			name:   "missing author",
			modify: func(req *CreateBlogPostRequest) { req.Author = "" },
			field:  "author",
		},
		{
			name:   "invalid cover",
			modify: func(req *CreateBlogPostRequest) { req.Cover = "not a url" },
			field:  "cover",
		},
		{
			name:   "zero read time",
			modify: func(req *CreateBlogPostRequest) { req.ReadTime = &ReadTime{Value: 0, Unit: "minute"} },
			field:  "readTime.value",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := testPostRequest()
			tc.modify(req)

			_, err := s.CreateBlogPost(context.Background(), req)

			var verr common.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Errors, tc.field)
		})
	}

	posts, err := s.GetBlogPosts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestCreateBlogPostStripsScripts(t *testing.T) {
	s, _ := setupService(t)

	req := testPostRequest()
	req.Content = "hello<script>alert(1)</script>"

	post, err := s.CreateBlogPost(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "hello", post.Content)
}

func TestGetBlogPosts(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()

	posts, err := s.GetBlogPosts(ctx)
	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)

	for i := 0; i < 3; i++ {
		req := testPostRequest()
		req.Title = fmt.Sprintf("post %d", i)
		_, err := s.CreateBlogPost(ctx, req)
		require.NoError(t, err)
	}

	posts, err = s.GetBlogPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "post 0", posts[0].Title)
	assert.Equal(t, "post 2", posts[2].Title)
}

func TestGetBlogPostByIDNotFound(t *testing.T) {
	s, _ := setupService(t)

	_, err := s.GetBlogPostByID(context.Background(), "zzz")
	assert.ErrorIs(t, err, common.ErrRecordNotFound)
	assert.EqualError(t, err, `there is no blog post with "zzz" as an ID`)
}

func TestUpdateBlogPost(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()

	post, err := s.CreateBlogPost(ctx, testPostRequest())
	require.NoError(t, err)

	updated, err := s.UpdateBlogPost(ctx, post.ID, &UpdateBlogPostRequest{
		Title:    strptr("New title"),
		ReadTime: &ReadTime{Value: 4, Unit: "minute"},
	})
	require.NoError(t, err)

	assert.Equal(t, post.ID, updated.ID)
	assert.Equal(t, post.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(post.UpdatedAt))
	assert.Equal(t, "New title", updated.Title)
	assert.Equal(t, post.Content, updated.Content)
	assert.Equal(t, &ReadTime{Value: 4, Unit: "minute"}, updated.ReadTime)

	got, err := s.GetBlogPostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestUpdateBlogPostErrors(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()

	post, err := s.CreateBlogPost(ctx, testPostRequest())
	require.NoError(t, err)

	_, err = s.UpdateBlogPost(ctx, "missing", &UpdateBlogPostRequest{Title: strptr("x")})
	assert.ErrorIs(t, err, common.ErrRecordNotFound)

	_, err = s.UpdateBlogPost(ctx, post.ID, &UpdateBlogPostRequest{Title: strptr("")})
	var verr common.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "must not be empty", verr.Errors["title"])

	got, err := s.GetBlogPostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Title)
}

func TestDeleteBlogPost(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()

	post, err := s.CreateBlogPost(ctx, testPostRequest())
	require.NoError(t, err)

	require.NoError(t, s.DeleteBlogPost(ctx, post.ID))

	_, err = s.GetBlogPostByID(ctx, post.ID)
	assert.ErrorIs(t, err, common.ErrRecordNotFound)

	err = s.DeleteBlogPost(ctx, post.ID)
	assert.ErrorIs(t, err, common.ErrRecordNotFound)
	assert.Contains(t, err.Error(), post.ID)
}

func TestSetCover(t *testing.T) {
	s, publicDir := setupService(t)
	ctx := context.Background()

	post, err := s.CreateBlogPost(ctx, testPostRequest())
	require.NoError(t, err)

	content := []byte("GIF89a cover")
	updated, err := s.SetCover(ctx, post.ID, &CoverUpload{
		Filename:    "Holiday.GIF",
		ContentType: "image/gif",
		Body:        bytes.NewReader(content),
	})
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3002/"+post.ID+".gif", updated.Cover)
	assert.True(t, updated.UpdatedAt.After(post.UpdatedAt))

	written, err := os.ReadFile(filepath.Join(publicDir, post.ID+".gif"))
	require.NoError(t, err)
	assert.Equal(t, content, written)

	_, err = s.SetCover(ctx, "missing", &CoverUpload{Filename: "a.png", Body: bytes.NewReader(content)})
	assert.ErrorIs(t, err, common.ErrRecordNotFound)
}

func TestComments(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()

	post, err := s.CreateBlogPost(ctx, testPostRequest())
	require.NoError(t, err)

	withComment, err := s.AddComment(ctx, post.ID, &CreateCommentRequest{Author: "bob", Text: "nice", Rate: 5})
	require.NoError(t, err)
	require.Len(t, withComment.Comments, 1)
	assert.NotEmpty(t, withComment.Comments[0].ID)
	assert.Equal(t, "nice", withComment.Comments[0].Text)
	assert.True(t, withComment.UpdatedAt.After(post.UpdatedAt))

	_, err = s.AddComment(ctx, post.ID, &CreateCommentRequest{Text: "second"})
	require.NoError(t, err)

	comments, err := s.GetComments(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "nice", comments[0].Text)
	assert.Equal(t, "second", comments[1].Text)

	afterDelete, err := s.DeleteComment(ctx, post.ID, comments[0].ID)
	require.NoError(t, err)
	require.Len(t, afterDelete.Comments, 1)
	assert.Equal(t, comments[1].ID, afterDelete.Comments[0].ID)
}

func TestCommentErrors(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()

	post, err := s.CreateBlogPost(ctx, testPostRequest())
	require.NoError(t, err)

	testCases := []struct {
		name  string
		req   *CreateCommentRequest
		field string
	}{
		{name: "author too long", req: &CreateCommentRequest{Author: string(bytes.Repeat([]byte("a"), 101))}, field: "author"},
		{name: "rate too high", req: &CreateCommentRequest{Text: "hi", Rate: 6}, field: "rate"},
		{name: "negative rate", req: &CreateCommentRequest{Text: "hi", Rate: -1}, field: "rate"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.AddComment(ctx, post.ID, tc.req)

			var verr common.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Errors, tc.field)
		})
	}

	comments, err := s.GetComments(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	_, err = s.AddComment(ctx, "missing", &CreateCommentRequest{Text: "hi"})
	assert.ErrorIs(t, err, common.ErrRecordNotFound)

	// the parent is resolved before the comment is checked
	_, err = s.AddComment(ctx, "missing", &CreateCommentRequest{Rate: 9})
	assert.ErrorIs(t, err, common.ErrRecordNotFound)

	_, err = s.GetComments(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrRecordNotFound)

	_, err = s.DeleteComment(ctx, "missing", "c1")
	assert.ErrorIs(t, err, common.ErrRecordNotFound)
}

func TestCommentExtraFields(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()

	post, err := s.CreateBlogPost(ctx, testPostRequest())
	require.NoError(t, err)

	var req CreateCommentRequest
	require.NoError(t, json.Unmarshal([]byte(`{"author":"bob","comment":"nice","likes":3,"id":"forged"}`), &req))
	assert.Equal(t, "bob", req.Author)
	assert.Empty(t, req.Text)
	require.Len(t, req.Extra, 2)

	_, err = s.AddComment(ctx, post.ID, &req)
	require.NoError(t, err)

	comments, err := s.GetComments(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.NotEqual(t, "forged", comments[0].ID)
	assert.JSONEq(t, `"nice"`, string(comments[0].Extra["comment"]))
	assert.JSONEq(t, `3`, string(comments[0].Extra["likes"]))

	data, err := json.Marshal(comments[0])
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Equal(t, "nice", fields["comment"])
	assert.Equal(t, "bob", fields["author"])
	assert.Equal(t, comments[0].ID, fields["id"])
}

func TestDeleteUnknownComment(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()

	post, err := s.CreateBlogPost(ctx, testPostRequest())
	require.NoError(t, err)

	post, err = s.AddComment(ctx, post.ID, &CreateCommentRequest{Text: "keep me"})
	require.NoError(t, err)

	got, err := s.DeleteComment(ctx, post.ID, "no-such-comment")
	require.NoError(t, err)
	assert.Equal(t, post.Comments, got.Comments)
	assert.Equal(t, post.UpdatedAt, got.UpdatedAt)
}

func TestAddCommentConcurrent(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()

	post, err := s.CreateBlogPost(ctx, testPostRequest())
	require.NoError(t, err)

	const writers = 20
	var wg sync.WaitGroup
	errs := make(chan error, writers)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.AddComment(ctx, post.ID, &CreateCommentRequest{Text: fmt.Sprintf("comment %d", i)})
			errs <- err
		}(i)
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}

	comments, err := s.GetComments(ctx, post.ID)
	require.NoError(t, err)
	assert.Len(t, comments, writers)
}

func TestEventsArePublished(t *testing.T) {
	mb := new(mockProducer)
	s := NewBlogService(store.NewMemoryStore(), mediaservice.NewDiskStorage(t.TempDir(), "http://localhost:3002"), mb, nil)
	s.now = testClock()
	ctx := context.Background()

	mb.On("Publish", mock.Anything, mock.Anything, common.PostCreatedKey, common.BlogExchange).Return(nil).Once()
	mb.On("Publish", mock.Anything, mock.Anything, common.CommentAddedKey, common.BlogExchange).Return(errors.New("broker down")).Once()

	post, err := s.CreateBlogPost(ctx, testPostRequest())
	require.NoError(t, err)

	// a failing broker must not fail the request
	_, err = s.AddComment(ctx, post.ID, &CreateCommentRequest{Author: "bob", Text: "hi"})
	require.NoError(t, err)

	mb.AssertExpectations(t)

	var event CommentAddedEvent
	for _, call := range mb.Calls {
		if call.Arguments.Get(2) == common.CommentAddedKey {
			require.NoError(t, json.Unmarshal(call.Arguments.Get(1).([]byte), &event))
		}
	}
	assert.Equal(t, post.ID, event.PostID)
	assert.Equal(t, "x", event.PostAuthor)
	assert.Equal(t, "hi", event.CommentText)
}
