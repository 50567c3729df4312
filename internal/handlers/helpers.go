package handlers

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gin-gonic/gin"
	"figure-forge-backend/internal/middleware"
	"figure-forge-backend/internal/models"
	"figure-forge-backend/internal/services"
)

func actorFromContext(c *gin.Context) services.Actor {
	return services.Actor{
		ID:         c.GetString(middleware.UserIDKey),
		IsOperator: c.GetBool(middleware.IsAdminKey),
	}
}

func readImageFile(fh *multipart.FileHeader) (services.ImageFile, error) {
	src, err := fh.Open()
	if err != nil {
		return services.ImageFile{}, fmt.Errorf("failed to open %s: %w", fh.Filename, err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return services.ImageFile{}, fmt.Errorf("failed to read %s: %w", fh.Filename, err)
	}

	return services.ImageFile{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func readImageFiles(fhs []*multipart.FileHeader) ([]services.ImageFile, error) {
	images := make([]services.ImageFile, 0, len(fhs))
	for _, fh := range fhs {
		img, err := readImageFile(fh)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, nil
}

func orderResponse(order *models.CustomOrder) models.OrderResponse {
	resp := models.OrderResponse{
		ID:                  order.ID.String(),
		RequesterID:         order.RequesterID,
		Description:         order.Description,
		SizePreference:      order.SizePreference,
		SourceImagePath:     order.SourceImagePath,
		ReferenceImagePaths: order.ReferenceImagePaths,
		Status:              string(order.Status),
		CompletedImagePaths: order.CompletedImagePaths,
		CreatedAt:           order.CreatedAt,
		UpdatedAt:           order.UpdatedAt,
	}
	if order.QuotedPrice.Valid {
		resp.QuotedPrice = order.QuotedPrice.Decimal.String()
	}
	if order.LinkedProductID.Valid {
		resp.LinkedProductID = order.LinkedProductID.UUID.String()
	}
	return resp
}

func productResponse(product *models.Product) models.ProductResponse {
	return models.ProductResponse{
		ID:            product.ID.String(),
		Name:          product.Name,
		Description:   product.Description,
		Price:         product.Price.String(),
		BasePrice:     product.BasePrice.String(),
		PaintingPrice: product.PaintingPrice.String(),
		StockQuantity: product.StockQuantity,
		CategoryID:    product.CategoryID,
		ImagePaths:    product.ImagePaths,
		IsActive:      product.IsActive,
		CreatedAt:     product.CreatedAt,
	}
}
