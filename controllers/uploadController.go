package controllers

import (
	"log"
	"net/http"

	"github.com/Kariqs/nebula-api/initializers"
	"github.com/gin-gonic/gin"
)

// UploadFile stores one multipart "file" and returns its public URL.
func UploadFile(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "No file received.")
		return
	}

	f, err := file.Open()
	if err != nil {
		log.Printf("Error opening file %s: %v", file.Filename, err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to read file.")
		return
	}
	defer f.Close()

	url, err := initializers.Uploader.Upload(ctx.Request.Context(), file.Filename, file.Header.Get("Content-Type"), f)
	if err != nil {
		log.Println("Upload error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to upload file.")
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{"url": url})
}
