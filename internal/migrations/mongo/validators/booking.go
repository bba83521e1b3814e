package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"guest_house_id",
			"room_id",
			"user_id",
			"check_in_date",
			"check_out_date",
			"status",
			"created_by",
			"created_by_role",
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

			"room_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"user_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"check_in_date": bson.M{
				"bsonType": "date",
			},

			"check_out_date": bson.M{
				"bsonType": "date",
			},

			"purpose": bson.M{
				"bsonType":  "string",
				"maxLength": 300,
			},

			"department": bson.M{
				"bsonType":  "string",
				"maxLength": 100,
			},

			"occupancy_type": bson.M{
				"bsonType":  "string",
				"maxLength": 50,
			},

			"status": bson.M{
				"enum": []string{"PENDING", "REJECTED", "BOOKED", "CHECKED_IN", "CHECKED_OUT", "CANCELLED"},
			},

			"actual_check_in": bson.M{
				"bsonType": []string{"date", "null"},
			},

			"actual_check_out": bson.M{
				"bsonType": []string{"date", "null"},
			},

			"created_by": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"created_by_role": bson.M{
				"enum": []string{"SUPER_ADMIN", "ADMIN", "CUSTOMER"},
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
