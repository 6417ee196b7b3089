// Package vendorstore owns the vendor profile records: creation at
// seller signup, updates, and the active-vendor query the catalog reads.
package vendorstore

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"munchmarket/blob"
	"munchmarket/models"
)

// UploadError means blob storage rejected a file. The enclosing profile
// operation is aborted before any document write.
type UploadError struct {
	Filename string
	Err      error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload %s: %v", e.Filename, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// WriteError means the document store rejected the profile record.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string { return "vendor write: " + e.Err.Error() }

func (e *WriteError) Unwrap() error { return e.Err }

// ProfileInput carries the business fields a seller submits.
type ProfileInput struct {
	BusinessName     string
	BusinessLocation string
	Description      string
	BusinessType     string
	CuisineType      string
	OwnerEmail       string
	DeliveryTime     int
	MinPrice         int64
}

// Upload is a file to push to blob storage before the record write.
type Upload struct {
	Filename    string
	ContentType string
	Data        io.Reader
}

// Store wraps the vendors collection and the blob storage uploads go to.
type Store struct {
	collection *mongo.Collection
	blobs      blob.Storage
}

func NewStore(client *mongo.Client, database string, blobs blob.Storage) *Store {
	return &Store{
		collection: client.Database(database).Collection("vendors"),
		blobs:      blobs,
	}
}

// CreateProfile uploads the logo and photos first, then writes the
// profile record with the resulting URLs embedded. Any upload failure
// aborts the whole operation; no partial profile is ever written.
// New profiles start pending until moderation activates them.
func (s *Store) CreateProfile(ctx context.Context, ownerID string, in ProfileInput, logo *Upload, photos []Upload) (models.Vendor, error) {
	logoURL, photoURLs, err := s.uploadAssets(ctx, ownerID, logo, photos)
	if err != nil {
		return models.Vendor{}, err
	}

	if in.BusinessType == "" {
		in.BusinessType = "Food Vendor"
	}

	now := time.Now().UTC()
	vendor := models.Vendor{
		ID:               ownerID,
		BusinessName:     in.BusinessName,
		BusinessLocation: in.BusinessLocation,
		Description:      in.Description,
		BusinessType:     in.BusinessType,
		CuisineType:      in.CuisineType,
		Owner:            in.OwnerEmail,
		Status:           models.VendorStatusPending,
		BusinessLogo:     logoURL,
		Photos:           photoURLs,
		DeliveryTime:     in.DeliveryTime,
		MinPrice:         in.MinPrice,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if _, err := s.collection.InsertOne(ctx, vendor); err != nil {
		return models.Vendor{}, &WriteError{Err: err}
	}
	return vendor, nil
}

// updateDocument builds the $set document for a profile update. Only
// fields the seller actually submitted are applied; an omitted form
// field must never wipe a stored value. updated_at always refreshes.
func updateDocument(in ProfileInput, logoURL string, photoURLs []string, now time.Time) bson.M {
	set := bson.M{"updated_at": now}
	if in.BusinessName != "" {
		set["business_name"] = in.BusinessName
	}
	if in.BusinessLocation != "" {
		set["business_location"] = in.BusinessLocation
	}
	if in.Description != "" {
		set["description"] = in.Description
	}
	if in.BusinessType != "" {
		set["business_type"] = in.BusinessType
	}
	if in.CuisineType != "" {
		set["cuisine_type"] = in.CuisineType
	}
	if in.DeliveryTime > 0 {
		set["delivery_time"] = in.DeliveryTime
	}
	if in.MinPrice > 0 {
		set["min_price"] = in.MinPrice
	}
	if logoURL != "" {
		set["business_logo"] = logoURL
	}
	if len(photoURLs) > 0 {
		set["photos"] = photoURLs
	}
	return set
}

// UpdateProfile uploads any new assets first, then applies the submitted
// business fields and refreshes updated_at.
func (s *Store) UpdateProfile(ctx context.Context, ownerID string, in ProfileInput, logo *Upload, photos []Upload) (models.Vendor, error) {
	logoURL, photoURLs, err := s.uploadAssets(ctx, ownerID, logo, photos)
	if err != nil {
		return models.Vendor{}, err
	}

	var updated models.Vendor
	err = s.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": ownerID},
		bson.M{"$set": updateDocument(in, logoURL, photoURLs, time.Now().UTC())},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		return models.Vendor{}, &WriteError{Err: err}
	}
	return updated, nil
}

// GetByOwner returns the vendor record keyed by the owner's uid.
func (s *Store) GetByOwner(ctx context.Context, ownerID string) (models.Vendor, error) {
	var vendor models.Vendor
	if err := s.collection.FindOne(ctx, bson.M{"_id": ownerID}).Decode(&vendor); err != nil {
		return models.Vendor{}, fmt.Errorf("find vendor %s: %w", ownerID, err)
	}
	return vendor, nil
}

// ActiveVendors returns the vendors eligible for the shopper catalog.
// Pending and rejected vendors are never included.
func (s *Store) ActiveVendors(ctx context.Context) ([]models.Vendor, error) {
	cursor, err := s.collection.Find(ctx,
		bson.M{"status": models.VendorStatusActive},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("find active vendors: %w", err)
	}
	defer cursor.Close(ctx)

	var vendors []models.Vendor
	if err := cursor.All(ctx, &vendors); err != nil {
		return nil, fmt.Errorf("read active vendors: %w", err)
	}
	return vendors, nil
}

func (s *Store) uploadAssets(ctx context.Context, ownerID string, logo *Upload, photos []Upload) (string, []string, error) {
	var logoURL string
	if logo != nil {
		url, err := s.blobs.Upload(ctx, path.Join("vendors", ownerID, logo.Filename), logo.ContentType, logo.Data)
		if err != nil {
			return "", nil, &UploadError{Filename: logo.Filename, Err: err}
		}
		logoURL = url
	}

	var photoURLs []string
	for _, photo := range photos {
		url, err := s.blobs.Upload(ctx, path.Join("vendors", ownerID, "photos", photo.Filename), photo.ContentType, photo.Data)
		if err != nil {
			return "", nil, &UploadError{Filename: photo.Filename, Err: err}
		}
		photoURLs = append(photoURLs, url)
	}
	return logoURL, photoURLs, nil
}
