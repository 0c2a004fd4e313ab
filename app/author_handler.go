package main

import (
	"encoding/json"
	"net/http"

	"github.com/sushihentaime/blogfiles/internal/authorservice"
)

func (app *application) createAuthorHandler(w http.ResponseWriter, r *http.Request) {
	var input authorservice.CreateAuthorRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	author, err := app.authorService.CreateAuthor(r.Context(), &input)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"id": author.ID}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) getAuthorsHandler(w http.ResponseWriter, r *http.Request) {
	authors, err := app.authorService.GetAuthors(r.Context())
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, authors, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) getAuthorHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	author, err := app.authorService.GetAuthorByID(r.Context(), id)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, author, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

type updateAuthorInput struct {
	authorservice.UpdateAuthorRequest
	ID        json.RawMessage `json:"id"`
	CreatedAt json.RawMessage `json:"createdAt"`
	UpdatedAt json.RawMessage `json:"updatedAt"`
}

func (app *application) updateAuthorHandler(w http.ResponseWriter, r *http.Request) {
	var input updateAuthorInput

	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	author, err := app.authorService.UpdateAuthor(r.Context(), id, &input.UpdateAuthorRequest)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, author, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) deleteAuthorHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	err = app.authorService.DeleteAuthor(r.Context(), id)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
