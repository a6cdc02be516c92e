package mongo

import (
	"Folioforge/internal/api/config"
	"Folioforge/internal/pkg/logger"
	"context"
	log "log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InitMongo 建立连接并返回 Database 引用，同时初始化访问事件集合的索引
func InitMongo(cfg config.MongoConfig, dedupDaily bool) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// 建立连接
	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(cfg.URL).
		SetMonitor(logger.NewMongoMonitor()),
	)
	if err != nil {
		return nil, err
	}

	// 检查连通性
	if err = client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(cfg.Database)
	if err = ensureAnalyticIndexes(ctx, db, dedupDaily); err != nil {
		return nil, err
	}

	log.Info("MongoDB initialized successfully", "db", cfg.Database)
	return db, nil
}

func ensureAnalyticIndexes(ctx context.Context, db *mongo.Database, dedupDaily bool) error {
	col := db.Collection(analyticCollection)
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "portfolio_id", Value: 1}, {Key: "viewed_at", Value: -1}},
		},
	}
	if dedupDaily {
		// 同一访客同一天对同一作品集只记一次
		indexes = append(indexes, mongo.IndexModel{
			Keys:    bson.D{{Key: "portfolio_id", Value: 1}, {Key: "viewer_hash", Value: 1}, {Key: "view_date", Value: 1}},
			Options: options.Index().SetUnique(true),
		})
	}
	_, err := col.Indexes().CreateMany(ctx, indexes)
	return err
}
