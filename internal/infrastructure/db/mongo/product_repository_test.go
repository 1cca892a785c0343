package mongo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestOwnedFilter(t *testing.T) {
	id, owner := primitive.NewObjectID(), primitive.NewObjectID()

	filter, ok := ownedFilter(id.Hex(), "")
	require.True(t, ok)
	assert.Equal(t, bson.M{"_id": id}, filter)

	filter, ok = ownedFilter(id.Hex(), owner.Hex())
	require.True(t, ok)
	assert.Equal(t, bson.M{"_id": id, "business_id": owner}, filter)

	_, ok = ownedFilter("42", owner.Hex())
	assert.False(t, ok)

	_, ok = ownedFilter(id.Hex(), "someone")
	assert.False(t, ok)
}

func TestProductDoc_ToDomain_NilImages(t *testing.T) {
	doc := productDoc{ID: primitive.NewObjectID(), BusinessID: primitive.NewObjectID(), Name: "Mug"}

	p := doc.toDomain()
	assert.NotNil(t, p.Images)
	assert.Empty(t, p.Images)
	assert.Equal(t, doc.BusinessID.Hex(), p.BusinessID)
}
