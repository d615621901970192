package payme

import (
	"encoding/base64"
	"errors"
	"log"
	"strconv"
	"strings"

	"edume/config"
	"edume/database"
	"edume/models"
	"edume/services"
	"edume/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Payme merchant API error codes.
const (
	errInsufficientPrivilege = -32504
	errMethodNotFound        = -32601
	errParseError            = -32700
	errOrderNotFound         = -31050
	errWrongAmount           = -31001
	errTransactionNotFound   = -31003
	errCannotPerform         = -31008
)

// Transaction states reported back to the gateway.
const (
	stateCreated   = 1
	statePerformed = 2
	stateCancelled = -1
)

type merchantRequest struct {
	ID     interface{}    `json:"id"`
	Method string         `json:"method"`
	Params merchantParams `json:"params"`
}

type merchantParams struct {
	ID      string                 `json:"id"` // gateway transaction id
	Time    int64                  `json:"time"`
	Amount  int64                  `json:"amount"`
	Reason  *int                   `json:"reason"`
	Account map[string]interface{} `json:"account"`
}

// orderID pulls account.order_id, which the gateway sends as either a string
// or a number.
func (p *merchantParams) orderID() (uint, bool) {
	raw, ok := p.Account["order_id"]
	if !ok {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		return uint(v), true
	case string:
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, false
		}
		return uint(n), true
	}
	return 0, false
}

func rpcResult(c *fiber.Ctx, id interface{}, result fiber.Map) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"result": result,
		"id":     id,
	})
}

func rpcError(c *fiber.Ctx, id interface{}, code int, message string) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
		"id": id,
	})
}

// authorized validates the gateway's Basic auth header: login "Paycom",
// password the merchant key. No ledger side effect runs without it.
func authorized(c *fiber.Ctx) bool {
	key := config.AppConfig.PaymeKey
	if key == "" {
		return false
	}

	header := c.Get("Authorization")
	if !strings.HasPrefix(header, "Basic ") {
		return false
	}
	decoded, err := base64.StdEncoding.DecodeString(header[len("Basic "):])
	if err != nil {
		return false
	}
	return string(decoded) == "Paycom:"+key
}

// MerchantHandler is the gateway callback entry point: one POST endpoint
// dispatching the Payme merchant JSON-RPC methods.
func MerchantHandler(c *fiber.Ctx) error {
	if !authorized(c) {
		return rpcError(c, nil, errInsufficientPrivilege, "Unauthorized request")
	}

	var req merchantRequest
	if err := c.BodyParser(&req); err != nil {
		return rpcError(c, nil, errParseError, "Invalid request body")
	}

	db := database.Database.Db

	switch req.Method {
	case "CheckPerformTransaction":
		return checkPerformTransaction(c, db, &req)
	case "CreateTransaction":
		return createTransaction(c, db, &req)
	case "PerformTransaction":
		return performTransaction(c, db, &req)
	case "CancelTransaction":
		return cancelTransaction(c, db, &req)
	case "CheckTransaction":
		return checkTransaction(c, db, &req)
	}
	return rpcError(c, req.ID, errMethodNotFound, "Method not found: "+req.Method)
}

func checkPerformTransaction(c *fiber.Ctx, db *gorm.DB, req *merchantRequest) error {
	orderID, ok := req.Params.orderID()
	if !ok {
		return rpcError(c, req.ID, errOrderNotFound, "Order not found")
	}

	var order models.Order
	if err := db.First(&order, orderID).Error; err != nil {
		return rpcError(c, req.ID, errOrderNotFound, "Order not found")
	}
	if req.Params.Amount != order.Amount {
		return rpcError(c, req.ID, errWrongAmount, "Wrong amount")
	}
	return rpcResult(c, req.ID, fiber.Map{"allow": true})
}

func createTransaction(c *fiber.Ctx, db *gorm.DB, req *merchantRequest) error {
	orderID, ok := req.Params.orderID()
	if !ok {
		return rpcError(c, req.ID, errOrderNotFound, "Order not found")
	}
	log.Printf("Payme CreateTransaction: order_id=%d txn=%s", orderID, req.Params.ID)

	check, err := services.FindCheckByOrder(db, orderID)
	if err != nil {
		return rpcError(c, req.ID, errOrderNotFound, "Order not found")
	}
	if check.Status == models.CheckStatusPaid || check.Status == models.CheckStatusCancelled {
		return rpcError(c, req.ID, errCannotPerform, "Check is no longer pending")
	}
	if check.TransactionID != "" && check.TransactionID != req.Params.ID {
		// Another gateway transaction already owns this order.
		return rpcError(c, req.ID, errCannotPerform, "Order already has a transaction")
	}
	if check.TransactionID == "" {
		if err := services.AttachTransaction(db, orderID, req.Params.ID); err != nil {
			return rpcError(c, req.ID, errCannotPerform, "Unable to attach transaction")
		}
	}

	return rpcResult(c, req.ID, fiber.Map{
		"create_time": check.CreatedAt.UnixMilli(),
		"transaction": check.Reference,
		"state":       stateCreated,
	})
}

func performTransaction(c *fiber.Ctx, db *gorm.DB, req *merchantRequest) error {
	check, err := findCheckByTransaction(db, req.Params.ID)
	if err != nil {
		return rpcError(c, req.ID, errTransactionNotFound, "Transaction not found")
	}

	paid, err := services.CompletePayment(db, check.OrderID)
	if err != nil {
		log.Printf("Payme PerformTransaction failed: order_id=%d: %v", check.OrderID, err)
		return rpcError(c, req.ID, errCannotPerform, "Unable to perform transaction")
	}
	if paid != nil {
		log.Printf("Payme PerformTransaction: order_id=%d txn=%s paid", check.OrderID, req.Params.ID)
		go notifyPayment(db, paid)
	}

	// Re-read for the redelivery case, where CompletePayment was a no-op.
	current, err := services.FindCheckByOrder(db, check.OrderID)
	if err != nil || current.Status != models.CheckStatusPaid {
		return rpcError(c, req.ID, errCannotPerform, "Unable to perform transaction")
	}

	return rpcResult(c, req.ID, fiber.Map{
		"perform_time": current.UpdatedAt.UnixMilli(),
		"transaction":  current.Reference,
		"state":        statePerformed,
	})
}

func cancelTransaction(c *fiber.Ctx, db *gorm.DB, req *merchantRequest) error {
	check, err := findCheckByTransaction(db, req.Params.ID)
	if err != nil {
		return rpcError(c, req.ID, errTransactionNotFound, "Transaction not found")
	}
	if check.Status == models.CheckStatusPaid {
		// Paid is terminal.
		return rpcError(c, req.ID, errCannotPerform, "Paid check cannot be cancelled")
	}

	if err := services.CancelPayment(db, check.OrderID); err != nil {
		return rpcError(c, req.ID, errCannotPerform, "Unable to cancel transaction")
	}
	log.Printf("Payme CancelTransaction: order_id=%d txn=%s", check.OrderID, req.Params.ID)

	return rpcResult(c, req.ID, fiber.Map{
		"cancel_time": check.UpdatedAt.UnixMilli(),
		"transaction": check.Reference,
		"state":       stateCancelled,
	})
}

func checkTransaction(c *fiber.Ctx, db *gorm.DB, req *merchantRequest) error {
	check, err := findCheckByTransaction(db, req.Params.ID)
	if err != nil {
		return rpcError(c, req.ID, errTransactionNotFound, "Transaction not found")
	}

	state := stateCreated
	performTime := int64(0)
	cancelTime := int64(0)
	switch check.Status {
	case models.CheckStatusPaid:
		state = statePerformed
		performTime = check.UpdatedAt.UnixMilli()
	case models.CheckStatusCancelled:
		state = stateCancelled
		cancelTime = check.UpdatedAt.UnixMilli()
	}

	return rpcResult(c, req.ID, fiber.Map{
		"create_time":  check.CreatedAt.UnixMilli(),
		"perform_time": performTime,
		"cancel_time":  cancelTime,
		"transaction":  check.Reference,
		"state":        state,
		"reason":       nil,
	})
}

func findCheckByTransaction(db *gorm.DB, transactionID string) (*models.Check, error) {
	if transactionID == "" {
		return nil, errors.New("empty transaction id")
	}
	var check models.Check
	if err := db.Where("transaction_id = ?", transactionID).First(&check).Error; err != nil {
		return nil, err
	}
	return &check, nil
}

// notifyPayment emails the buyer a receipt, best effort.
func notifyPayment(db *gorm.DB, check *models.Check) {
	var user models.User
	if err := db.First(&user, check.AuthorID).Error; err != nil {
		return
	}
	if user.Email == "" {
		return
	}
	var course models.Course
	if err := db.First(&course, check.CourseID).Error; err != nil {
		return
	}
	if err := utils.SendPaymentReceiptEmail(user.Email, user.FirstName, course.Name, check.Reference); err != nil {
		log.Printf("Failed to send receipt email for check %d: %v", check.ID, err)
	}
}
