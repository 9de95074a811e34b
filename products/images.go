package products

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"siopa/models"
	"siopa/utils"

	"github.com/disintegration/imaging"
)

const (
	maxProductImages = 5
	minImageDim      = 600
	productPicDir    = "./static/productpic"
	thumbWidth       = 300
)

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// parseProductForm reads the scalar product fields out of a multipart form.
func parseProductForm(r *http.Request) (models.Product, error) {
	var p models.Product

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return p, fmt.Errorf("invalid form data")
	}

	p.Name = r.FormValue("name")
	p.Description = r.FormValue("description")

	var err error
	if p.Price, err = strconv.ParseFloat(r.FormValue("price"), 64); err != nil {
		return p, fmt.Errorf("invalid price")
	}
	if v := r.FormValue("discount"); v != "" {
		if p.Discount, err = strconv.Atoi(v); err != nil {
			return p, fmt.Errorf("invalid discount")
		}
	}
	if v := r.FormValue("stock"); v != "" {
		if p.Stock, err = strconv.Atoi(v); err != nil {
			return p, fmt.Errorf("invalid stock")
		}
	}
	p.BrandNew = r.FormValue("brand_new") == "true"
	if v := r.FormValue("category"); v != "" {
		for _, tag := range strings.Split(v, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				p.Category = append(p.Category, tag)
			}
		}
	}

	return p, nil
}

// saveProductImages stores up to five uploaded images, rejecting anything
// smaller than 600x600, and writes a thumbnail beside each original.
// Returns the stored image and thumbnail paths.
func saveProductImages(r *http.Request, productID string) ([]string, []string, error) {
	images := []string{}
	thumbs := []string{}

	if r.MultipartForm == nil {
		return images, thumbs, nil
	}
	files := r.MultipartForm.File["images"]
	if len(files) > maxProductImages {
		return nil, nil, fmt.Errorf("at most %d images per product", maxProductImages)
	}
	if len(files) > 0 {
		if err := os.MkdirAll(filepath.Join(productPicDir, "thumb"), 0o755); err != nil {
			return nil, nil, fmt.Errorf("unable to prepare image directory")
		}
	}

	for _, header := range files {
		ext := strings.ToLower(filepath.Ext(header.Filename))
		if !allowedImageExts[ext] {
			return nil, nil, fmt.Errorf("unsupported file type %s", ext)
		}

		file, err := header.Open()
		if err != nil {
			return nil, nil, fmt.Errorf("unable to read image")
		}
		img, err := imaging.Decode(file)
		file.Close()
		if err != nil {
			return nil, nil, fmt.Errorf("invalid image %s", header.Filename)
		}

		bounds := img.Bounds()
		if bounds.Dx() < minImageDim || bounds.Dy() < minImageDim {
			return nil, nil, fmt.Errorf("image %s is smaller than %dx%d", header.Filename, minImageDim, minImageDim)
		}

		name := productID + "-" + utils.GetUUID() + ext
		originalPath := filepath.Join(productPicDir, name)
		if err := imaging.Save(img, originalPath); err != nil {
			return nil, nil, fmt.Errorf("unable to save image")
		}

		thumbImg := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos)
		thumbPath := filepath.Join(productPicDir, "thumb", name)
		if err := imaging.Save(thumbImg, thumbPath); err != nil {
			return nil, nil, fmt.Errorf("unable to save thumbnail")
		}

		images = append(images, "/static/productpic/"+name)
		thumbs = append(thumbs, "/static/productpic/thumb/"+name)
	}

	return images, thumbs, nil
}
