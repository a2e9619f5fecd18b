package initializers

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/Kariqs/nebula-api/cart"
	"github.com/Kariqs/nebula-api/payment"
	"github.com/Kariqs/nebula-api/storage"
)

const defaultCartTTL = 72 * time.Hour

var (
	Carts    cart.Store
	Payments payment.Gateway
	Uploader storage.Uploader
)

func cartTTL() time.Duration {
	raw := os.Getenv("CART_TTL")
	if raw == "" {
		return defaultCartTTL
	}
	ttl, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatal("Invalid CART_TTL: ", err)
	}
	return ttl
}

func ConnectCartStore() {
	ttl := cartTTL()

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		Carts = cart.NewMemoryStore(ttl)
		log.Println("Using in-memory cart store.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	store, err := cart.NewRedisStoreFromURL(ctx, redisURL, ttl)
	if err != nil {
		log.Fatal("Failed to connect to redis: ", err)
	}
	Carts = store
	log.Println("Using redis cart store.")
}

func SetupPayments() {
	rzp := payment.NewRazorpay(
		os.Getenv("RAZORPAY_KEY_ID"),
		os.Getenv("RAZORPAY_KEY_SECRET"),
		os.Getenv("RAZORPAY_BASE_URL"),
	)
	if rzp.Offline() {
		log.Println("Razorpay credentials not found. Payment orders will be created offline.")
	}
	Payments = rzp
}

func SetupUploader() {
	switch os.Getenv("UPLOAD_BACKEND") {
	case "s3":
		bucket := os.Getenv("S3_BUCKET")
		if bucket == "" {
			log.Fatal("S3_BUCKET is required when UPLOAD_BACKEND=s3")
		}
		uploader, err := storage.NewS3Uploader(context.Background(), bucket)
		if err != nil {
			log.Fatal(err)
		}
		Uploader = uploader
	default:
		Uploader = storage.NewLocalUploader(UploadDir(), UploadPublicPath())
	}
}

// LocalUploads reports whether uploads are written to local disk and must be
// served by this process.
func LocalUploads() bool {
	return os.Getenv("UPLOAD_BACKEND") != "s3"
}

func UploadDir() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "public/uploads"
}

func UploadPublicPath() string {
	if publicPath := os.Getenv("UPLOAD_PUBLIC_PATH"); publicPath != "" {
		return publicPath
	}
	return "/uploads"
}
