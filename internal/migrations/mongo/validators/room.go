package validators

import "go.mongodb.org/mongo-driver/bson"

var RoomValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"guest_house_id",
			"room_number",
			"type",
			"capacity",
			"status",
			"is_active",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"guest_house_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"room_number": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 20,
			},

			"type": bson.M{
				"enum": []string{"SINGLE", "DOUBLE"},
			},

			"capacity": bson.M{
				"bsonType": "int",
				"minimum":  1,
				"maximum":  10,
			},

			"floor": bson.M{
				"bsonType": "int",
				"minimum":  0,
				"maximum":  50,
			},

			"amenities": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType":  "string",
					"maxLength": 50,
				},
			},

			"status": bson.M{
				"enum": []string{"ACTIVE", "MAINTENANCE"},
			},

			"is_active": bson.M{
				"bsonType": "bool",
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
