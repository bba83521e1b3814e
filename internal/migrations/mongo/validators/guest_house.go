package validators

import "go.mongodb.org/mongo-driver/bson"

var GuestHouseValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"is_active",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"location": bson.M{
				"bsonType":  "string",
				"maxLength": 100,
			},

			"category": bson.M{
				"enum": []string{"STANDARD", "EXECUTIVE", "PREMIUM"},
			},

			"address": bson.M{
				"bsonType":  "string",
				"maxLength": 300,
			},

			"is_active": bson.M{
				"bsonType": "bool",
			},

			"created_by": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},

			"updated_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
