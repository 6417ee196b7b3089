package controllers

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"munchmarket/middleware"
	"munchmarket/models"
	"munchmarket/vendorstore"
)

const maxUploadBytes = 10 << 20 // 10 MiB per profile submission

// VendorController handles vendor profile management for sellers
type VendorController struct {
	Store  *vendorstore.Store
	Logger *zap.Logger
}

// NewVendorController creates a new VendorController
func NewVendorController(store *vendorstore.Store, logger *zap.Logger) *VendorController {
	return &VendorController{Store: store, Logger: logger}
}

// CreateProfile creates the caller's vendor profile from a multipart
// form. Images are uploaded before the record is written; an upload
// failure aborts the whole operation.
func (vc *VendorController) CreateProfile(w http.ResponseWriter, r *http.Request) {
	vc.writeProfile(w, r, vc.Store.CreateProfile)
}

// UpdateProfile updates the caller's vendor profile
func (vc *VendorController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	vc.writeProfile(w, r, vc.Store.UpdateProfile)
}

// GetMyProfile returns the caller's vendor profile
func (vc *VendorController) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	vendor, err := vc.Store.GetByOwner(ctx, claims.UID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Vendor profile not found")
		return
	}
	writeJSON(w, http.StatusOK, vendor)
}

func (vc *VendorController) writeProfile(w http.ResponseWriter, r *http.Request,
	write func(ctx context.Context, ownerID string, in vendorstore.ProfileInput, logo *vendorstore.Upload, photos []vendorstore.Upload) (models.Vendor, error),
) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	deliveryTime, _ := strconv.Atoi(r.FormValue("deliveryTime"))
	minPrice, _ := strconv.ParseInt(r.FormValue("minPrice"), 10, 64)

	in := vendorstore.ProfileInput{
		BusinessName:     r.FormValue("businessName"),
		BusinessLocation: r.FormValue("businessLocation"),
		Description:      r.FormValue("description"),
		BusinessType:     r.FormValue("businessType"),
		CuisineType:      r.FormValue("cuisineType"),
		OwnerEmail:       claims.Email,
		DeliveryTime:     deliveryTime,
		MinPrice:         minPrice,
	}

	logo, closeLogo, err := formUpload(r, "logo")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Could not read logo upload")
		return
	}
	defer closeLogo()

	photos, closePhotos, err := formUploads(r, "photos")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Could not read photo uploads")
		return
	}
	defer closePhotos()

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	vendor, err := write(ctx, claims.UID, in, logo, photos)
	if err != nil {
		var uploadErr *vendorstore.UploadError
		var writeErr *vendorstore.WriteError
		switch {
		case errors.As(err, &uploadErr):
			vc.Logger.Error("profile image upload failed", zap.String("uid", claims.UID), zap.Error(err))
			writeError(w, http.StatusBadGateway, "Image upload failed. Please try again.")
		case errors.As(err, &writeErr):
			vc.Logger.Error("profile write failed", zap.String("uid", claims.UID), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Could not save your profile. Please try again.")
		default:
			vc.Logger.Error("profile operation failed", zap.String("uid", claims.UID), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Could not save your profile. Please try again.")
		}
		return
	}

	writeJSON(w, http.StatusCreated, vendor)
}

func formUpload(r *http.Request, field string) (*vendorstore.Upload, func(), error) {
	file, header, err := r.FormFile(field)
	if err == http.ErrMissingFile {
		return nil, func() {}, nil
	}
	if err != nil {
		return nil, func() {}, err
	}
	return &vendorstore.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        file,
	}, func() { file.Close() }, nil
}

func formUploads(r *http.Request, field string) ([]vendorstore.Upload, func(), error) {
	if r.MultipartForm == nil {
		return nil, func() {}, nil
	}

	var files []multipart.File
	var uploads []vendorstore.Upload
	closeAll := func() {
		for _, f := range files {
			f.Close()
		}
	}

	for _, header := range r.MultipartForm.File[field] {
		file, err := header.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		files = append(files, file)
		uploads = append(uploads, vendorstore.Upload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        file,
		})
	}
	return uploads, closeAll, nil
}
