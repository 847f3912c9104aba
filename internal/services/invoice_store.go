package services

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"time"

	"neroli_back_end/internal/database"

	"github.com/minio/minio-go/v7"
)

func invoiceBucket() string {
	if b := os.Getenv("MINIO_BUCKET"); b != "" {
		return b
	}
	return "invoices"
}

// ArchiveInvoice dépose la facture PDF d'une commande dans MinIO.
// L'objet est nommé par l'id de commande : une régénération écrase l'ancienne.
func ArchiveInvoice(ctx context.Context, orderID string, pdf []byte) error {
	if database.MinIO == nil {
		return fmt.Errorf("MinIO non initialisé")
	}

	objectName := fmt.Sprintf("facture_%s.pdf", orderID)
	_, err := database.MinIO.PutObject(ctx, invoiceBucket(), objectName,
		bytes.NewReader(pdf), int64(len(pdf)),
		minio.PutObjectOptions{ContentType: "application/pdf"})
	return err
}

// InvoiceSignedURL génère une URL signée à durée limitée vers la facture d'une commande.
func InvoiceSignedURL(ctx context.Context, orderID string, duration time.Duration) (string, error) {
	if database.MinIO == nil {
		return "", fmt.Errorf("MinIO non initialisé")
	}

	objectName := fmt.Sprintf("facture_%s.pdf", orderID)
	reqParams := make(url.Values)

	presignedURL, err := database.MinIO.PresignedGetObject(ctx, invoiceBucket(), objectName, duration, reqParams)
	if err != nil {
		return "", err
	}

	return presignedURL.String(), nil
}
