// Package mongo connects to MongoDB with the v2 driver, retrying until the
// server answers a ping.
//
//	coll, err := mongo.Collection(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer coll.Database().Client().Disconnect(context.Background())
//
//	store := savedobjects.NewMongoStore(coll)
//
// Connection settings come from MONGODB_* environment variables.
package mongo
