package mongo

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bizsphere/marketplace/internal/core/domain"
)

// newestFirst is the sort applied to every listing.
var newestFirst = bson.D{{Key: "created_at", Value: -1}}

// withoutSecrets keeps password hashes out of every account read that is
// not used for credential checks.
var withoutSecrets = bson.M{"password_hash": 0}

func accountFilter(f domain.AccountFilter) bson.M {
	filter := bson.M{}
	if f.Role != "" {
		filter["role"] = string(f.Role)
	}
	if f.VerificationStatus != "" {
		filter["verification_status"] = string(f.VerificationStatus)
	}
	return filter
}

// productFilter translates a domain filter into a query. It reports false
// when the filter can never match, such as a business id that is not an
// ObjectID.
func productFilter(f domain.ProductFilter) (bson.M, bool) {
	filter := bson.M{}
	if f.BusinessID != "" {
		oid, err := primitive.ObjectIDFromHex(f.BusinessID)
		if err != nil {
			return nil, false
		}
		filter["business_id"] = oid
	}
	if f.Category != "" {
		filter["category"] = string(f.Category)
	}
	if f.ActiveOnly {
		filter["is_active"] = true
	}
	if f.MaxStock != nil {
		filter["stock"] = bson.M{"$lte": *f.MaxStock}
	}
	return filter, true
}

// objectIDs converts hex ids, silently dropping malformed ones.
func objectIDs(ids []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			out = append(out, oid)
		}
	}
	return out
}
