package storage

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestUpsertModels_RateBeforeTimestamp(t *testing.T) {
	t.Parallel()
	assert := require.New(t)

	models := upsertModels(map[string]string{
		"USD-PHP-timestamp": "1721649600.000000",
		"USD-PHP":           "56.78",
	})

	assert.Len(models, 2)

	for i, expected := range []struct{ key, value string }{
		{"USD-PHP", "56.78"},
		{"USD-PHP-timestamp", "1721649600.000000"},
	} {
		model, ok := models[i].(*mongo.UpdateOneModel)
		assert.True(ok)
		assert.Equal(bson.M{"_id": expected.key}, model.Filter)
		assert.Equal(bson.M{"$set": bson.M{"value": expected.value}}, model.Update)
		assert.NotNil(model.Upsert)
		assert.True(*model.Upsert)
	}
}
