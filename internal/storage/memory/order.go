package memory

import "go.mongodb.org/mongo-driver/bson/primitive"

func removeFromOrder(order []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	for i, v := range order {
		if v == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}
