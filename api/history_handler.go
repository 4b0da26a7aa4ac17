package api

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/iCreativate/peboli-sub000/models"
	"github.com/iCreativate/peboli-sub000/utils"
)

const historyLimit = 50

// ImportHistoryHandler lists the caller's most recent imports, newest first
func ImportHistoryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.RespondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	collection := utils.GetCollection("imports")
	if collection == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "Import history is not available")
		return
	}

	filter := bson.M{}
	if userID, err := GetUserIDFromContext(r.Context()); err == nil {
		filter["user_id"] = userID
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(historyLimit)

	cursor, err := collection.Find(r.Context(), filter, findOpts)
	if err != nil {
		logrus.WithError(err).Error("Failed to query import history")
		utils.RespondError(w, http.StatusInternalServerError, "Failed to load import history")
		return
	}
	defer cursor.Close(r.Context())

	records := []models.ImportRecord{}
	if err := cursor.All(r.Context(), &records); err != nil {
		logrus.WithError(err).Error("Failed to decode import history")
		utils.RespondError(w, http.StatusInternalServerError, "Failed to load import history")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"imports": records})
}
