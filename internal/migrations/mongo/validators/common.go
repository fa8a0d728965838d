package validators

import "go.mongodb.org/mongo-driver/bson"

const (
	datePattern  = `^\d{4}-\d{2}-\d{2}$`
	clockPattern = `^([01]\d|2[0-3]):[0-5]\d$`
)

var (
	objectIDString = bson.M{"bsonType": "string", "minLength": 24, "maxLength": 24}
	userID         = bson.M{"bsonType": "string", "minLength": 1, "maxLength": 128}
	date           = bson.M{"bsonType": "string", "pattern": datePattern}
	clock          = bson.M{"bsonType": "string", "pattern": clockPattern}
	integer        = []string{"int", "long"}
	number         = []string{"double", "int", "long"}
	targetType     = bson.M{"bsonType": "string", "enum": []string{"guide", "business"}}
	rating         = bson.M{"bsonType": number, "minimum": 0, "maximum": 5}
	ratingCount    = bson.M{"bsonType": integer, "minimum": 0}
	timestamp      = bson.M{"bsonType": "date"}
)
