package api

import (
	"github.com/startailors/tailorshop/internal/billing"
	"github.com/startailors/tailorshop/internal/shop"
)

func normalizeCustomer(r record) shop.Customer {
	return shop.Customer{
		ID:                 r.str("_id", "id"),
		Name:               r.str("name"),
		Phone:              r.str("phone"),
		Email:              r.str("email"),
		Address:            r.str("address"),
		Notes:              r.str("notes"),
		OutstandingBalance: r.float("outstanding_balance", "outstandingBalance"),
		CreatedAt:          r.timeValue("created_at", "createdAt"),
	}
}

func normalizeBillItem(r record) shop.BillItem {
	return shop.BillItem{
		Type:         r.str("itemType", "type", "item_type"),
		Description:  r.str("description"),
		Quantity:     r.int("quantity", "qty"),
		Rate:         r.float("rate", "price"),
		Measurements: r.texts("measurements", "sizes"),
	}
}

// normalizeBill maps a backend bill. When the backend reports a total, the
// subtotal is derived from it so Total() reproduces the stored figure.
func normalizeBill(r record) shop.Bill {
	customer := r.obj("customer")
	b := shop.Bill{
		ID:                  r.str("_id", "id"),
		Number:              r.str("bill_no_str", "billNoStr"),
		CustomerID:          r.str("customer_id", "customerId"),
		CustomerName:        firstNonEmpty(r.str("customer_name"), customer.str("name"), r.str("customerName")),
		CustomerPhone:       firstNonEmpty(r.str("customer_phone"), customer.str("phone"), r.str("customerPhone")),
		CustomerAddress:     r.str("customer_address", "customerAddress"),
		Discount:            r.float("discount"),
		Advance:             r.float("advance", "advanceAmount"),
		Status:              shop.BillStatus(r.str("status")),
		DueDate:             r.str("due_date", "dueDate"),
		SpecialInstructions: r.str("special_instructions", "specialInstructions", "notes"),
		DesignImages:        r.strs("design_images"),
		Drawings:            r.strs("drawings"),
		Signature:           r.str("signature"),
		CreatedAt:           r.timeValue("created_at", "createdAt"),
	}
	if b.Number == "" {
		if n, ok := r.num("bill_no", "billNo"); ok {
			b.Number = billing.FormatBillNumber(int(n))
		}
	}
	if b.Status == "" {
		b.Status = shop.BillPending
	}
	for _, item := range r.list("items") {
		b.Items = append(b.Items, normalizeBillItem(item))
	}
	if total, ok := r.num("total", "totalAmount"); ok {
		b.Subtotal = total + b.Discount
	} else if sub, ok := r.num("subtotal"); ok {
		b.Subtotal = sub
	} else {
		b.Subtotal = billing.Subtotal(b.Lines())
	}
	return b
}

func normalizeTailor(r record) shop.Tailor {
	t := shop.Tailor{
		ID:             r.str("_id", "id"),
		Name:           r.str("name"),
		Phone:          r.str("phone"),
		Email:          r.str("email"),
		Specialization: r.str("specialization"),
		Experience:     r.str("experience"),
		Status:         shop.TailorStatus(r.str("status")),
		TotalJobs:      r.int("total_jobs", "totalJobs"),
		CompletedJobs:  r.int("completed_jobs", "completedJobs"),
		PendingJobs:    r.int("pending_jobs", "pendingJobs"),
		CreatedAt:      r.timeValue("created_at", "createdAt"),
	}
	if t.Status == "" {
		t.Status = shop.TailorActive
	}
	return t
}

func normalizeJob(r record) shop.Job {
	tailor := r.obj("tailor")
	j := shop.Job{
		ID:            r.str("_id", "id"),
		BillID:        r.str("bill_id", "billId"),
		TailorID:      r.str("tailor_id", "tailorId"),
		TailorName:    firstNonEmpty(r.str("tailor_name"), tailor.str("name"), r.str("tailorName")),
		CustomerName:  r.str("customer_name", "customerName"),
		CustomerPhone: r.str("customer_phone", "customerPhone"),
		Priority:      shop.Priority(r.str("priority")),
		Status:        shop.JobStatus(r.str("status")),
		Instructions:  r.str("instructions", "description"),
		AssignedAt:    r.timePtr("assigned_date", "assignedDate", "assigned_at"),
		DueDate:       r.timePtr("due_date", "dueDate"),
		CompletedAt:   r.timePtr("completed_date", "completedDate", "completed_at"),
		CreatedAt:     r.timeValue("created_at", "createdAt"),
	}
	for _, item := range r.list("items") {
		j.Items = append(j.Items, shop.JobItem{
			Type:         item.str("type", "itemType", "item_type"),
			Description:  item.str("description"),
			Measurements: item.texts("measurements", "sizes"),
		})
	}
	j.ItemType = r.str("item_type", "itemType")
	if j.ItemType == "" && len(j.Items) > 0 {
		j.ItemType = j.Items[0].Type
	}
	if j.ItemType == "" {
		j.ItemType = r.str("title")
	}
	if j.Priority == "" {
		j.Priority = shop.PriorityMedium
	}
	return j
}

func normalizeUser(r record) shop.User {
	return shop.User{
		ID:       r.str("id", "_id", "user_id"),
		Username: r.str("username"),
		Role:     r.str("role"),
	}
}

func normalizeUPI(r record) shop.UPISettings {
	return shop.UPISettings{
		UPIID:        r.str("upi_id", "upiId"),
		BusinessName: r.str("business_name", "businessName"),
	}
}

func normalizeBusiness(r record) shop.BusinessSettings {
	return shop.BusinessSettings{
		BusinessName: r.str("business_name", "businessName"),
		Address:      r.str("address"),
		Phone:        r.str("phone"),
		Email:        r.str("email"),
	}
}

func normalizeRevenue(r record) shop.RevenuePoint {
	return shop.RevenuePoint{
		Period:        r.str("period", "date"),
		Revenue:       r.float("revenue", "amount"),
		Orders:        r.int("orders", "bills_count", "billsCount"),
		AvgOrderValue: r.float("avgOrderValue", "avg_order_value"),
	}
}

func normalizeCustomerReport(r record) shop.CustomerReport {
	return shop.CustomerReport{
		CustomerID:        r.str("customer_id", "_id", "id"),
		Name:              r.str("name"),
		Phone:             r.str("phone"),
		Email:             r.str("email"),
		TotalOrders:       r.int("total_orders", "totalOrders"),
		TotalSpent:        r.float("total_spent", "totalSpent"),
		OutstandingAmount: r.float("outstanding_amount", "outstanding_balance", "outstandingAmount"),
		LastOrderDate:     r.timePtr("last_order_date", "lastOrderDate"),
		Status:            r.str("status"),
	}
}

func normalizeTailorReport(r record) shop.TailorReport {
	t := shop.TailorReport{
		TailorID:          r.str("tailor_id", "_id", "id"),
		Name:              r.str("name"),
		Phone:             r.str("phone"),
		Specialization:    r.str("specialization"),
		TotalJobs:         r.int("total_jobs", "totalJobs"),
		CompletedJobs:     r.int("completed_jobs", "completedJobs"),
		PendingJobs:       r.int("pending_jobs", "pendingJobs"),
		AvgCompletionTime: r.float("avg_completion_time", "avgCompletionTime"),
		Revenue:           r.float("revenue"),
	}
	if rate, ok := r.num("completion_rate", "efficiency"); ok {
		t.CompletionRate = rate
	} else {
		t.CompletionRate = shop.Tailor{TotalJobs: t.TotalJobs, CompletedJobs: t.CompletedJobs}.CompletionRate()
	}
	return t
}

func normalizeOutstanding(r record) shop.OutstandingReport {
	o := shop.OutstandingReport{
		CustomerID:        r.str("customer_id", "_id"),
		CustomerName:      r.str("customer_name", "name"),
		Phone:             r.str("phone", "customer_phone"),
		OutstandingAmount: r.float("outstanding_amount", "total_outstanding"),
		OldestDue:         r.timePtr("oldest_due"),
		OverdueDays:       r.int("overdue_days"),
	}
	for _, order := range r.list("orders") {
		item := shop.OutstandingOrder{
			BillID:      order.str("bill_id"),
			Amount:      order.float("amount"),
			DueDate:     order.timePtr("due_date"),
			DaysOverdue: order.int("days_overdue"),
		}
		if item.DaysOverdue > o.OverdueDays {
			o.OverdueDays = item.DaysOverdue
		}
		o.Orders = append(o.Orders, item)
	}
	return o
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
