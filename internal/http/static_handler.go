package http

import "net/http"

type pageResponse struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func About(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, pageResponse{
		Title: "About",
		Body:  "E-Coomarse is a small storefront for everyday products.",
	})
}

func Contact(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, pageResponse{
		Title: "Contact",
		Body:  "Reach us at support@ecoomarse.local.",
	})
}
