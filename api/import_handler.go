package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/iCreativate/peboli-sub000/config"
	"github.com/iCreativate/peboli-sub000/importer"
	"github.com/iCreativate/peboli-sub000/models"
	"github.com/iCreativate/peboli-sub000/observability"
	"github.com/iCreativate/peboli-sub000/utils"
)

// Pipeline is the shared import pipeline, wired up in main
var Pipeline *importer.Importer

// ImportProductHandler handles GET /api/import-product?url=...
//
// Optional query params: render=browser|full picks a rendered fetch strategy,
// mirror=1 re-hosts the harvested images on S3.
func ImportProductHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	productURL := r.URL.Query().Get("url")
	if productURL == "" {
		observability.ImportsTotal.WithLabelValues("missing_url").Inc()
		utils.RespondError(w, http.StatusBadRequest, "Missing url")
		return
	}

	// Admins paste short links; resolve them before the pipeline needs the
	// real page URL as a base.
	if utils.IsShortenedURL(productURL) {
		if resolved, err := utils.ResolveShortenedURL(productURL); err == nil {
			productURL = resolved
		}
	}

	opts := importer.Options{Render: r.URL.Query().Get("render")}

	product, err := Pipeline.Import(r.Context(), productURL, opts)
	if err != nil {
		handleImportError(w, productURL, err)
		return
	}

	if r.URL.Query().Get("mirror") == "1" && config.AWSBucketName != "" {
		product.Images = mirrorImages(r, product.Images)
	}

	saveImportRecord(r, productURL, opts.Render, product)

	observability.ImportsTotal.WithLabelValues("success").Inc()
	observability.ImportDuration.Observe(time.Since(start).Seconds())
	utils.RespondJSON(w, http.StatusOK, product)
}

func handleImportError(w http.ResponseWriter, productURL string, err error) {
	if errors.Is(err, importer.ErrInvalidURL) {
		observability.ImportsTotal.WithLabelValues("invalid_url").Inc()
		utils.RespondError(w, http.StatusBadRequest, "Invalid url")
		return
	}

	observability.ImportsTotal.WithLabelValues("upstream_error").Inc()
	logrus.WithError(err).WithField("url", productURL).Warn("Import fetch failed")

	var statusErr *importer.FetchStatusError
	if errors.As(err, &statusErr) {
		utils.RespondJSON(w, http.StatusBadGateway, map[string]interface{}{
			"error":  fmt.Sprintf("Failed to fetch page (%d)", statusErr.Status),
			"status": statusErr.Status,
		})
		return
	}

	// Transport-level failure (DNS, refused connection): no upstream status
	// to report.
	utils.RespondError(w, http.StatusBadGateway, "Failed to fetch page")
}

// mirrorImages re-hosts the images on S3 and swaps in presigned URLs. Any
// image that failed to mirror keeps its original URL.
func mirrorImages(r *http.Request, images []string) []string {
	urlToKey, err := utils.MirrorImagesToS3(r.Context(), images)
	if err != nil {
		logrus.WithError(err).Warn("Image mirroring failed, returning source URLs")
		return images
	}

	keys := make([]string, 0, len(images))
	for _, img := range images {
		if key, ok := urlToKey[img]; ok {
			keys = append(keys, key)
		} else {
			keys = append(keys, img)
		}
	}
	return utils.PresignImageURLs(r.Context(), keys)
}

// saveImportRecord persists the import for the history view. Best-effort: a
// missing database or a failed insert never fails the import itself.
func saveImportRecord(r *http.Request, sourceURL, renderMode string, product *models.ImportedProduct) {
	collection := utils.GetCollection("imports")
	if collection == nil {
		return
	}

	userID, _ := GetUserIDFromContext(r.Context())

	record := models.ImportRecord{
		ID:         uuid.New().String(),
		UserID:     userID,
		SourceURL:  sourceURL,
		RenderMode: renderMode,
		Product:    *product,
		CreatedAt:  time.Now(),
	}

	if _, err := collection.InsertOne(r.Context(), record); err != nil {
		logrus.WithError(err).Warn("Failed to save import record")
	}
}
