package setup

import (
	"context"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jacentio/todolist/internal/config"
	"github.com/jacentio/todolist/store"
	"github.com/jacentio/todolist/store/cache"
	"github.com/jacentio/todolist/store/memory"
	"github.com/jacentio/todolist/store/sqlite"
)

var ErrUnsupportedStorage = errors.New("unsupported storage")

type itemStoreFactory func(ctx context.Context, u *url.URL, conf *config.Config) (store.ItemStore, error)

var itemStoreFactories = map[string]itemStoreFactory{
	"memory":   newMemoryItemStore,
	"sqlite":   newSQLiteItemStore,
	"dynamodb": newDynamoDBItemStore,
}

var getItemStoreFromConfig = createFromConfigOnce(NewItemStoreFromConfig)

// NewItemStoreFromConfig opens the item store selected by the storage DSN.
func NewItemStoreFromConfig(ctx context.Context, conf *config.Config) (store.ItemStore, error) {
	u, err := url.Parse(conf.Storage.DSN)
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse storage dsn")
	}

	factory, exists := itemStoreFactories[u.Scheme]
	if !exists {
		return nil, errors.Wrapf(ErrUnsupportedStorage, "scheme '%s'", u.Scheme)
	}

	itemStore, err := factory(ctx, u, conf)
	if err != nil {
		return nil, errors.Wrapf(err, "could not create '%s' item store", u.Scheme)
	}

	if conf.Storage.Cache.Enabled {
		slog.DebugContext(ctx, "using cached item store", slog.Duration("ttl", conf.Storage.Cache.TTL), slog.Int("cache_size", conf.Storage.Cache.Size))
		itemStore = cache.NewStore(itemStore, conf.Storage.Cache.Size, conf.Storage.Cache.TTL)
	}

	return itemStore, nil
}

func newMemoryItemStore(ctx context.Context, u *url.URL, conf *config.Config) (store.ItemStore, error) {
	return memory.New(), nil
}

// newSQLiteItemStore handles sqlite://<path>; the path may be relative
// (sqlite://data.sqlite) or absolute (sqlite:///var/lib/todolist.sqlite).
func newSQLiteItemStore(ctx context.Context, u *url.URL, conf *config.Config) (store.ItemStore, error) {
	path := filepath.FromSlash(u.Host + u.Path)
	if path == "" {
		return nil, errors.New("missing database path")
	}

	db, err := sqlite.Open(path, &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel(slog.Level(conf.Logger.Level))),
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if slog.Level(conf.Logger.Level) == slog.LevelDebug {
		db = db.Debug()
	}

	return sqlite.NewStore(db), nil
}

// newDynamoDBItemStore handles dynamodb://[key:secret@]<table>?index=&region=&endpoint=&createTable=true
func newDynamoDBItemStore(ctx context.Context, u *url.URL, conf *config.Config) (store.ItemStore, error) {
	client, err := NewDynamoDBClient(ctx, u)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	storeConfig := DynamoDBStoreConfig(u)

	if createTable := u.Query().Get("createTable"); strings.EqualFold(createTable, "true") {
		slog.InfoContext(ctx, "ensuring dynamodb table exists", slog.String("table", storeConfig.TableName))
		if err := store.CreateTable(ctx, client, storeConfig); err != nil {
			return nil, errors.WithStack(err)
		}
	}

	return store.New(client, storeConfig), nil
}

// DynamoDBStoreConfig extracts the table layout from a dynamodb:// DSN.
func DynamoDBStoreConfig(u *url.URL) store.Config {
	storeConfig := store.DefaultConfig()
	if u.Host != "" {
		storeConfig.TableName = u.Host
	}
	if index := u.Query().Get("index"); index != "" {
		storeConfig.IDIndexName = index
	}
	return storeConfig
}

// NewDynamoDBClient creates a DynamoDB client from a dynamodb:// DSN.
// Without user info or endpoint, the default AWS credential chain and endpoints apply.
func NewDynamoDBClient(ctx context.Context, u *url.URL) (*dynamodb.Client, error) {
	query := u.Query()

	var opts []func(*awsconfig.LoadOptions) error

	if region := query.Get("region"); region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	if profile := query.Get("profile"); profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(profile))
	}

	if u.User != nil {
		secret, _ := u.User.Password()
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(u.User.Username(), secret, ""),
		))
	}

	awsConfig, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "could not load aws config")
	}

	endpoint := query.Get("endpoint")

	return dynamodb.NewFromConfig(awsConfig, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	}), nil
}

func gormLogLevel(level slog.Level) logger.LogLevel {
	switch level {
	case slog.LevelError:
		return logger.Error
	case slog.LevelWarn:
		return logger.Warn
	case slog.LevelInfo:
		return logger.Info
	default:
		return logger.Error
	}
}
