package handlers

import (
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

/*
=======================
  INPUT STRUCT
=======================
*/

type MultipartCampgroundInput struct {
	Title          string
	TitleSet       bool
	Description    string
	DescriptionSet bool
	Location       string
	LocationSet    bool
	Price          float64
	PriceSet       bool
	Website        string
	WebsiteSet     bool
	DeleteImages   []string
	Images         []*multipart.FileHeader
}

/*
=======================
  PARSER
=======================
*/

func parseMultipartCampgroundRequest(c *gin.Context) (MultipartCampgroundInput, error) {
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		log.Println("PARSE ERROR:", err)
		return MultipartCampgroundInput{}, err
	}

	input := MultipartCampgroundInput{}

	// ---- STRING FIELDS ----

	if value, ok := c.GetPostForm("title"); ok {
		input.Title = strings.TrimSpace(value)
		input.TitleSet = true
	}

	if value, ok := c.GetPostForm("description"); ok {
		input.Description = strings.TrimSpace(value)
		input.DescriptionSet = true
	}

	if value, ok := c.GetPostForm("location"); ok {
		input.Location = strings.TrimSpace(value)
		input.LocationSet = true
	}

	if value, ok := c.GetPostForm("website"); ok {
		input.Website = strings.TrimSpace(value)
		input.WebsiteSet = true
	}

	// ---- NUMBER FIELDS ----

	if value, ok := c.GetPostForm("price"); ok {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return MultipartCampgroundInput{}, err
		}
		input.Price = parsed
		input.PriceSet = true
	}

	// ---- IMAGE DELETIONS ----

	deleteImages := c.PostFormArray("deleteImages")
	for _, filename := range deleteImages {
		if trimmed := strings.TrimSpace(filename); trimmed != "" {
			input.DeleteImages = append(input.DeleteImages, trimmed)
		}
	}

	// ---- IMAGE FILES ----

	if form := c.Request.MultipartForm; form != nil {
		input.Images = form.File["image"]
	}

	return input, nil
}

func respondMultipartError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
