package adminControllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"fancystore-backend/models"
)

// GET /api/admin/orders/:orderId/invoice — renders the order as a PDF and
// streams it as an attachment.
func Invoice(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := primitive.ObjectIDFromHex(c.Param("orderId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order ID"})
			return
		}
		ctx := c.Request.Context()

		var order models.Order
		err = db.Collection("orders").FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to generate invoice"})
			return
		}
		var customer models.User
		db.Collection("users").FindOne(ctx, bson.M{"_id": order.UserID}).Decode(&customer)

		c.Header("Content-Type", "application/pdf")
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="invoice-%s.pdf"`, order.ID.Hex()))

		if err := writeInvoicePDF(c.Writer, order, customer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to generate invoice"})
		}
	}
}

func orDefault(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func writeInvoicePDF(w gin.ResponseWriter, order models.Order, customer models.User) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "INVOICE", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Order ID: %s", order.ID.Hex()),
		fmt.Sprintf("Date: %s", order.OrderDate.Format("02/01/2006")),
		fmt.Sprintf("Customer: %s", orDefault(customer.Name)),
		fmt.Sprintf("Email: %s", orDefault(customer.Email)),
		fmt.Sprintf("Phone: %s", orDefault(customer.Phone)),
		fmt.Sprintf("Shipping Address: %s", orDefault(order.ShippingInfo.Address)),
		fmt.Sprintf("Contact: %s", orDefault(order.ShippingInfo.Contact)),
	}
	for _, line := range lines {
		pdf.CellFormat(0, 7, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "BU", 12)
	pdf.CellFormat(0, 7, "Items:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	for i, item := range order.Items {
		name := item.Name
		if name == "" {
			name = "Unknown Product"
		}
		pdf.CellFormat(100, 7, fmt.Sprintf("%d. %s", i+1, name), "", 0, "L", false, 0, "")
		pdf.CellFormat(50, 7, fmt.Sprintf("%d x Rs.%.2f", item.Quantity, item.Price), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, fmt.Sprintf("Rs.%.2f", float64(item.Quantity)*item.Price), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	x, y := pdf.GetXY()
	pdf.Line(x, y, 200, y)
	pdf.Ln(4)

	pdf.CellFormat(0, 7, fmt.Sprintf("Total Amount: Rs.%.2f", order.TotalAmount), "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Payment Status: %s", order.PaymentStatus), "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Payment Method: %s", order.PaymentMethod), "", 1, "R", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Thank you for your business!", "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, "For any questions, please contact support@fancy.com", "", 1, "C", false, 0, "")

	return pdf.Output(w)
}
