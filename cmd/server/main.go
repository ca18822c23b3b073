package main

import (
	"os"

	"github.com/Luismorlan/postboard/filestore"
	"github.com/Luismorlan/postboard/server/handlers"
	"github.com/Luismorlan/postboard/server/middlewares"
	"github.com/Luismorlan/postboard/store"
	"github.com/Luismorlan/postboard/utils"
	"github.com/Luismorlan/postboard/utils/dotenv"
	flags "github.com/Luismorlan/postboard/utils/flag"
	. "github.com/Luismorlan/postboard/utils/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const localMediaDir = "media"

// newImageStore picks the image backend: S3 in prod, local disk otherwise.
func newImageStore() (filestore.ImageStore, error) {
	if os.Getenv("POSTBOARD_ENV") == dotenv.ProdEnv {
		return filestore.NewS3ImageStore(
			os.Getenv("S3_REGION"),
			os.Getenv("S3_IMAGE_BUCKET"),
			os.Getenv("IMAGE_URL_PREFIX"),
		)
	}
	return filestore.NewLocalImageStore(localMediaDir)
}

func main() {
	flags.Parse()

	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}
	InitLogger()

	db, err := utils.GetDBConnection()
	if err != nil {
		Log.Fatal("fail to connect to DB: ", err)
	}
	if err := utils.DatabaseSetupAndMigration(db); err != nil {
		Log.Fatal("fail to migrate DB: ", err)
	}

	images, err := newImageStore()
	if err != nil {
		Log.Fatal("fail to set up image store: ", err)
	}

	// Default With the Logger and Recovery middleware already attached
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(middlewares.Session(db))

	if os.Getenv("POSTBOARD_ENV") != dotenv.ProdEnv {
		// In prod the CDN serves images; locally we serve them ourselves.
		router.Static("/media", localMediaDir)
	}

	st := store.NewStore(db)
	handlers.NewPageHandler(st, images).RegisterRoutes(router)
	handlers.NewAPIHandler(st).RegisterRoutes(router, db)

	Log.Info("api server starts up")
	router.Run(":8080")
}
