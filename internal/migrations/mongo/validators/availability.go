package validators

import "go.mongodb.org/mongo-driver/bson"

var SlotValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"guide_id",
			"date",
			"start_time",
			"end_time",
			"status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id":        bson.M{"bsonType": "objectId"},
			"guide_id":   objectIDString,
			"date":       date,
			"start_time": clock,
			"end_time":   clock,
			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"available",
					"unavailable",
					"booked",
				},
			},
			"notes": bson.M{
				"bsonType":  "string",
				"maxLength": 500,
			},
			"booking_id": objectIDString,
			"created_at": timestamp,
			"updated_at": timestamp,
		},
	},
}

var SlotLockValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"_id", "expires_at"},
		"properties": bson.M{
			"_id":        bson.M{"bsonType": "string"},
			"expires_at": timestamp,
			"created_at": timestamp,
		},
	},
}
