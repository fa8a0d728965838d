package validators

import "go.mongodb.org/mongo-driver/bson"

var ReviewValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"target_type",
			"target_id",
			"author_id",
			"rating",
			"verified_booking",
			"status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id":         bson.M{"bsonType": "objectId"},
			"target_type": targetType,
			"target_id":   objectIDString,
			"author_id":   userID,
			"rating": bson.M{
				"bsonType": integer,
				"minimum":  1,
				"maximum":  5,
			},
			"title": bson.M{
				"bsonType":  "string",
				"maxLength": 150,
			},
			"comment": bson.M{
				"bsonType":  "string",
				"maxLength": 4000,
			},
			"tour_date":        date,
			"verified_booking": bson.M{"bsonType": "bool"},
			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"published",
					"hidden",
					"flagged",
					"pending",
				},
			},
			"created_at": timestamp,
			"updated_at": timestamp,
		},
	},
}

var NotificationValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"user_id",
			"type",
			"title",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id":        bson.M{"bsonType": "objectId"},
			"user_id":    userID,
			"type":       bson.M{"bsonType": "string"},
			"title":      bson.M{"bsonType": "string"},
			"message":    bson.M{"bsonType": "string"},
			"event_id":   bson.M{"bsonType": "string"},
			"read":       bson.M{"bsonType": "bool"},
			"created_at": timestamp,
		},
	},
}
