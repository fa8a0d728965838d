package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"target_type",
			"target_id",
			"owner_id",
			"customer_id",
			"date",
			"party_size",
			"status",
			"payment_status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id":         bson.M{"bsonType": "objectId"},
			"target_type": targetType,
			"target_id":   objectIDString,
			"owner_id":    userID,
			"customer_id": userID,
			"slot_id":     objectIDString,
			"date":        date,
			"start_time":  clock,
			"end_time":    clock,
			"party_size": bson.M{
				"bsonType": integer,
				"minimum":  1,
				"maximum":  100,
			},
			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"pending",
					"confirmed",
					"completed",
					"cancelled",
				},
			},
			"payment_status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"unpaid",
					"partially_paid",
					"paid",
				},
			},
			"cancellation_reason": bson.M{
				"bsonType":  "string",
				"maxLength": 500,
			},
			"confirmed_at": timestamp,
			"completed_at": timestamp,
			"cancelled_at": timestamp,
			"created_at":   timestamp,
			"updated_at":   timestamp,
		},
	},
}
