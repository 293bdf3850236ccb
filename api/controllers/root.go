package controllers

import (
	"net/http"

	"github.com/bazaarhq/bazaar-inventory/api/responses"
)

func Root() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"message": "Welcome to Bazaar Inventory API"})
	}
}
