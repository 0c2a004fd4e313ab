package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.staticFileHandler)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	router.HandlerFunc(http.MethodGet, "/healthcheck", app.healthCheckHandler)

	// blog posts
	router.HandlerFunc(http.MethodPost, "/blogPosts", app.createBlogPostHandler)
	router.HandlerFunc(http.MethodGet, "/blogPosts", app.getBlogPostsHandler)
	router.HandlerFunc(http.MethodGet, "/blogPosts/:id", app.getBlogPostHandler)
	router.HandlerFunc(http.MethodPut, "/blogPosts/:id", app.updateBlogPostHandler)
	router.HandlerFunc(http.MethodDelete, "/blogPosts/:id", app.deleteBlogPostHandler)
	router.HandlerFunc(http.MethodPost, "/blogPosts/:id/uploadCover", app.uploadCoverHandler)

	// comments
	router.HandlerFunc(http.MethodPost, "/blogPosts/:id/comments", app.createCommentHandler)
	router.HandlerFunc(http.MethodGet, "/blogPosts/:id/comments", app.getCommentsHandler)
	router.HandlerFunc(http.MethodDelete, "/blogPosts/:id/comments/:commentId", app.deleteCommentHandler)

	// authors
	router.HandlerFunc(http.MethodPost, "/authors", app.createAuthorHandler)
	router.HandlerFunc(http.MethodGet, "/authors", app.getAuthorsHandler)
	router.HandlerFunc(http.MethodGet, "/authors/:id", app.getAuthorHandler)
	router.HandlerFunc(http.MethodPut, "/authors/:id", app.updateAuthorHandler)
	router.HandlerFunc(http.MethodDelete, "/authors/:id", app.deleteAuthorHandler)

	return app.recoverPanic(app.logRequest(app.enableCORS(app.rateLimit(router))))
}
