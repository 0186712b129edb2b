package routes

import (
	"log"

	_ "agency_billing/docs" // swagger docs
	"agency_billing/internal/adapter/http/handlers"
	"agency_billing/internal/adapter/http/middleware"
	"agency_billing/internal/adapter/persistence/repository"
	"agency_billing/internal/config"
	"agency_billing/internal/infrastructure/cache"
	"agency_billing/internal/infrastructure/database"
	"agency_billing/internal/infrastructure/documents"
	"agency_billing/internal/infrastructure/notification"
	"agency_billing/internal/infrastructure/payments"
	"agency_billing/internal/usecase"
	"agency_billing/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

// Run will start the server
func Run() {
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Printf("[config] JWT_SECRET is empty, every authenticated request will be rejected")
	}

	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes(cfg)

	err := router.Run(":" + cfg.Port)
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes(cfg config.Config) {
	ddb := database.ConnectDynamoDB(cfg.AWS)

	quoteRepo := repository.NewQuoteDynamoRepository(ddb, cfg.Tables.Quotes, cfg.Tables.Identifiers)
	orderRepo := repository.NewOrderDynamoRepository(ddb, cfg.Tables.Orders, cfg.Tables.Identifiers)
	invoiceRepo := repository.NewInvoiceDynamoRepository(ddb, cfg.Tables.Invoices, cfg.Tables.Identifiers)
	projectRepo := repository.NewProjectDynamoRepository(ddb, cfg.Tables.Projects, cfg.Tables.Identifiers)
	userRepo := repository.NewUserDynamoRepository(ddb, cfg.Tables.Users)
	offerRepo := repository.NewOfferDynamoRepository(ddb, cfg.Tables.Offers)
	effectRepo := repository.NewEffectDynamoRepository(ddb, cfg.Tables.Effects)
	identifierRepo := repository.NewIdentifierDynamoRepository(ddb, cfg.Tables.Identifiers)

	ids := usecase.NewIdentifierAllocator(identifierRepo)
	intentGateway, checkoutGateway := buildGateways(cfg)
	notifier := notification.NewSMTPNotifier(notification.SMTPConfig(cfg.SMTP))

	var documentGenerator interfaces.IDocumentGenerator
	if cfg.AWS.DocumentsBucket != "" {
		documentGenerator = documents.NewPDFGenerator(database.ConnectS3(cfg.AWS), cfg.AWS.DocumentsBucket, "")
	} else {
		log.Printf("[documents] DOCUMENTS_BUCKET not set, invoice PDFs disabled")
	}

	var deduper interfaces.IEventDeduper
	if cfg.Redis.Host != "" {
		deduper = cache.NewRedisEventDeduper(cache.NewRedisClient(cache.RedisConfig(cfg.Redis)))
	}

	fulfillment := usecase.NewFulfillment(invoiceRepo, projectRepo, effectRepo, ids, documentGenerator, notifier)
	quoteUseCase := usecase.NewQuoteUseCase(quoteRepo, orderRepo, userRepo, intentGateway, ids, notifier, cfg.Currency)
	orderUseCase := usecase.NewOrderUseCase(orderRepo, offerRepo, userRepo, checkoutGateway, ids, fulfillment, cfg.Currency)
	paymentUseCase := usecase.NewPaymentUseCase(orderRepo, quoteRepo, intentGateway, fulfillment, deduper)
	invoiceUseCase := usecase.NewInvoiceUseCase(invoiceRepo, orderRepo, ids, documentGenerator, cfg.Currency)
	projectUseCase := usecase.NewProjectUseCase(projectRepo)

	h := billingHandlers{
		quotes:   handlers.NewQuoteHandler(quoteUseCase),
		orders:   handlers.NewOrderHandler(orderUseCase),
		payments: handlers.NewPaymentHandler(paymentUseCase),
		invoices: handlers.NewInvoiceHandler(invoiceUseCase),
		projects: handlers.NewProjectHandler(projectUseCase),
	}
	auth := middleware.NewAuth(cfg.JWTSecret)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addBillingRoutes(v1, auth, middleware.RateLimit(cfg.RateLimit), h)
}

// buildGateways picks the payment providers. PAYMENT_GATEWAY_MOCK swaps both for
// in-memory gateways; missing credentials leave an UnconfiguredGateway in place.
func buildGateways(cfg config.Config) (interfaces.IPaymentIntentGateway, interfaces.ICheckoutGateway) {
	if cfg.PaymentGatewayMock {
		log.Printf("[payments] PAYMENT_GATEWAY_MOCK enabled, using in-memory gateways")
		return payments.NewMockIntentGateway(), payments.NewMockCheckoutGateway()
	}

	var intents interfaces.IPaymentIntentGateway = payments.UnconfiguredGateway{Provider: "stripe"}
	if g, err := payments.NewStripeGateway(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret); err != nil {
		log.Printf("[payments] Stripe gateway not configured: %v", err)
	} else {
		intents = g
	}

	var checkout interfaces.ICheckoutGateway = payments.UnconfiguredGateway{Provider: cfg.CheckoutProvider}
	switch cfg.CheckoutProvider {
	case config.CheckoutProviderMercadoPago:
		if g, err := payments.NewMercadoPagoGateway(cfg.MercadoPagoAccessToken, cfg.FrontendURL); err != nil {
			log.Printf("[payments] Mercado Pago gateway not configured: %v", err)
		} else {
			checkout = g
		}
	case config.CheckoutProviderPayPal:
		if g, err := payments.NewPayPalGateway(cfg.PayPal.ClientID, cfg.PayPal.Secret, cfg.PayPal.Mode, cfg.FrontendURL); err != nil {
			log.Printf("[payments] PayPal gateway not configured: %v", err)
		} else {
			checkout = g
		}
	default:
		log.Printf("[payments] unknown CHECKOUT_PROVIDER=%q", cfg.CheckoutProvider)
	}
	return intents, checkout
}

func setMiddlewares() {
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
