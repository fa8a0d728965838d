package validators

import "go.mongodb.org/mongo-driver/bson"

var GuideValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"user_id",
			"name",
			"languages",
			"is_approved",
			"is_available",
			"average_rating",
			"rating_count",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id":     bson.M{"bsonType": "objectId"},
			"user_id": userID,
			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},
			"years_experience": bson.M{
				"bsonType": integer,
				"minimum":  0,
				"maximum":  80,
			},
			"languages": bson.M{
				"bsonType": "array",
				"minItems": 1,
				"maxItems": 20,
				"items":    bson.M{"bsonType": "string"},
			},
			"specialties": bson.M{
				"bsonType": "array",
				"maxItems": 20,
				"items":    bson.M{"bsonType": "string"},
			},
			"daily_rate": bson.M{
				"bsonType": number,
				"minimum":  0,
			},
			"phone": bson.M{
				"bsonType": "string",
				"pattern":  `^\+[1-9]\d{7,14}$`,
			},
			"is_approved":    bson.M{"bsonType": "bool"},
			"is_available":   bson.M{"bsonType": "bool"},
			"average_rating": rating,
			"rating_count":   ratingCount,
			"deleted_at":     timestamp,
			"created_at":     timestamp,
			"updated_at":     timestamp,
		},
	},
}

var BusinessValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"owner_id",
			"name",
			"category",
			"city",
			"average_rating",
			"rating_count",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id":      bson.M{"bsonType": "objectId"},
			"owner_id": userID,
			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 150,
			},
			"category": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 60,
			},
			"city": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},
			"average_rating": rating,
			"rating_count":   ratingCount,
			"created_at":     timestamp,
			"updated_at":     timestamp,
		},
	},
}
