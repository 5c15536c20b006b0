package repositories

import (
	"testing"
	"time"

	"cashper/internal/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestLoanToResponse(t *testing.T) {
	oid := primitive.NewObjectID()

	t.Run("well-formed admin document", func(t *testing.T) {
		applied := time.Date(2024, 2, 10, 9, 0, 0, 0, time.UTC)
		doc := bson.M{
			"_id":          oid,
			"customer":     "Asha Verma",
			"email":        "asha@example.com",
			"phone":        "9876543210",
			"type":         models.LoanTypePersonal,
			"amount":       int64(500000),
			"status":       "Approved",
			"appliedDate":  applied,
			"tenure":       24,
			"interestRate": 12.5,
			"purpose":      "Home renovation",
			"income":       int64(45000),
			"cibilScore":   int32(760),
			"documents":    primitive.A{"/uploads/documents/pan.pdf"},
		}

		got := loanToResponse(doc, models.CollAdminLoans)
		assert.Equal(t, oid.Hex(), got.ID)
		assert.Equal(t, "Asha Verma", got.Customer)
		assert.Equal(t, models.LoanTypePersonal, got.Type)
		assert.Equal(t, "₹5.0L", got.Amount)
		assert.Equal(t, "Approved", got.Status)
		assert.Equal(t, "2024-02-10", got.AppliedDate)
		assert.Equal(t, "24", got.Tenure)
		assert.Equal(t, "₹45,000/month", got.Income)
		assert.Equal(t, 760, got.CibilScore)
		assert.Equal(t, []string{"/uploads/documents/pan.pdf"}, got.Documents)
	})

	t.Run("legacy document with string amount and fullName", func(t *testing.T) {
		doc := bson.M{
			"_id":      oid,
			"fullName": "Ravi Kumar",
			"amount":   "₹2,50,000",
			"status":   "pending",
		}

		got := loanToResponse(doc, models.CollShortTermLoans)
		assert.Equal(t, "Ravi Kumar", got.Customer)
		assert.Equal(t, "₹2.5L", got.Amount)
		assert.Equal(t, "Pending", got.Status)
		assert.Equal(t, models.LoanTypeShortTerm, got.Type)
		assert.Equal(t, "N/A", got.Tenure)
		assert.Equal(t, "N/A", got.InterestRate)
	})

	t.Run("missing fields fall back", func(t *testing.T) {
		got := loanToResponse(bson.M{"_id": oid}, models.CollAdminLoans)
		assert.Equal(t, "Unknown", got.Customer)
		assert.Equal(t, "N/A", got.Amount)
		assert.Equal(t, "Pending", got.Status)
		assert.Equal(t, "Loan", got.Type)
		assert.Empty(t, got.Documents)
	})

	t.Run("uncoercible amount renders N/A", func(t *testing.T) {
		got := loanToResponse(bson.M{"_id": oid, "amount": "call me"}, models.CollAdminLoans)
		assert.Equal(t, "N/A", got.Amount)
	})

	t.Run("unrecognized status is capitalized", func(t *testing.T) {
		got := loanToResponse(bson.M{"_id": oid, "status": "ARCHIVED"}, models.CollAdminLoans)
		assert.Equal(t, "Archived", got.Status)
	})
}

func TestInferLoanType(t *testing.T) {
	tests := []struct {
		name       string
		doc        bson.M
		collection string
		want       string
	}{
		{"explicit type wins", bson.M{"type": models.LoanTypeHome}, models.CollShortTermLoans, models.LoanTypeHome},
		{"collection name short term", bson.M{}, models.CollShortTermLoans, models.LoanTypeShortTerm},
		{"collection name personal", bson.M{}, models.CollPersonalLoans, models.LoanTypePersonal},
		{"collection name business", bson.M{}, models.CollBusinessLoans, models.LoanTypeBusiness},
		{"collection name home", bson.M{}, models.CollHomeLoans, models.LoanTypeHome},
		{"purpose keyword wedding", bson.M{"purpose": "Sister's wedding expenses"}, models.CollAdminLoans, models.LoanTypeShortTerm},
		{"purpose keyword medical", bson.M{"purpose": "medical emergency"}, models.CollAdminLoans, models.LoanTypeShortTerm},
		{"bare fallback", bson.M{"purpose": "working capital"}, models.CollAdminLoans, "Loan"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, inferLoanType(tt.doc, tt.collection))
		})
	}
}

func TestCollectDocuments(t *testing.T) {
	t.Run("documents array wins over single fields", func(t *testing.T) {
		doc := bson.M{
			"documents": primitive.A{"/uploads/documents/a.pdf", "/uploads/documents/b.pdf"},
			"pan":       "ignored.pdf",
		}
		assert.Equal(t,
			[]string{"/uploads/documents/a.pdf", "/uploads/documents/b.pdf"},
			collectDocuments(doc))
	})

	t.Run("single fields are prefixed when bare", func(t *testing.T) {
		doc := bson.M{
			"aadhar": "aadhar.jpg",
			"pan":    "/uploads/documents/pan.pdf",
			"photo":  "photo.png",
		}
		got := collectDocuments(doc)
		assert.Equal(t, []string{
			"/uploads/documents/aadhar.jpg",
			"/uploads/documents/pan.pdf",
			"/uploads/documents/photo.png",
		}, got)
	})

	t.Run("no documents yields empty, not nil", func(t *testing.T) {
		got := collectDocuments(bson.M{})
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestSortAndPaginateLoans(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
	}
	docs := []bson.M{
		{"customer": "a", "appliedDate": day(1)},
		{"customer": "b", "appliedDate": day(5)},
		{"customer": "c", "createdAt": day(3)},
		{"customer": "d", "appliedDate": primitive.NewDateTimeFromTime(day(4))},
		{"customer": "e", "appliedDate": "2024-01-02"},
	}

	sortLoansByDate(docs)
	order := make([]string, len(docs))
	for i, d := range docs {
		order[i] = d["customer"].(string)
	}
	assert.Equal(t, []string{"b", "d", "c", "e", "a"}, order)

	t.Run("pages concatenate to the full list", func(t *testing.T) {
		var paged []bson.M
		for skip := 0; skip < len(docs); skip += 2 {
			paged = append(paged, paginateLoans(docs, skip, 2)...)
		}
		assert.Equal(t, docs, paged)
	})

	t.Run("skip past the end", func(t *testing.T) {
		assert.Nil(t, paginateLoans(docs, 10, 2))
	})

	t.Run("limit past the end is clamped", func(t *testing.T) {
		assert.Len(t, paginateLoans(docs, 4, 10), 1)
	})

	t.Run("stable for equal dates", func(t *testing.T) {
		same := []bson.M{
			{"customer": "x", "appliedDate": day(7)},
			{"customer": "y", "appliedDate": day(7)},
			{"customer": "z", "appliedDate": day(7)},
		}
		sortLoansByDate(same)
		assert.Equal(t, "x", same[0]["customer"])
		assert.Equal(t, "y", same[1]["customer"])
		assert.Equal(t, "z", same[2]["customer"])
	})
}

func TestStatusFilter(t *testing.T) {
	t.Run("empty and all match everything", func(t *testing.T) {
		assert.Empty(t, statusFilter(""))
		assert.Empty(t, statusFilter("all"))
	})

	t.Run("anchored case-insensitive match", func(t *testing.T) {
		filter := statusFilter("Under Review")
		clause, ok := filter["status"].(bson.M)
		assert.True(t, ok)
		assert.Equal(t, "^Under Review$", clause["$regex"])
		assert.Equal(t, "i", clause["$options"])
	})

	t.Run("regex metacharacters are escaped", func(t *testing.T) {
		filter := statusFilter("a.b")
		clause := filter["status"].(bson.M)
		assert.Equal(t, "^a\\.b$", clause["$regex"])
	})
}

func TestSearchFilter(t *testing.T) {
	assert.Empty(t, searchFilter(""))

	filter := searchFilter("asha")
	or, ok := filter["$or"].(bson.A)
	assert.True(t, ok)
	assert.Len(t, or, 5)
}

func TestCollectionsForType(t *testing.T) {
	t.Run("empty returns everything", func(t *testing.T) {
		assert.Len(t, collectionsForType(""), len(models.LoanCollections))
		assert.Len(t, collectionsForType("all"), len(models.LoanCollections))
	})

	t.Run("narrows to the product plus the admin collection", func(t *testing.T) {
		got := collectionsForType("personal")
		assert.Len(t, got, 2)
		assert.Equal(t, models.CollAdminLoans, got[0].Name)
		assert.Equal(t, models.CollPersonalLoans, got[1].Name)
	})

	t.Run("unknown type falls back to everything", func(t *testing.T) {
		assert.Len(t, collectionsForType("payday"), len(models.LoanCollections))
	})
}

func TestCheckEligibility(t *testing.T) {
	tests := []struct {
		name     string
		req      models.EligibilityRequest
		eligible bool
	}{
		{"too young", models.EligibilityRequest{Age: 19, MonthlyIncome: 50000, Amount: 100000}, false},
		{"too old", models.EligibilityRequest{Age: 65, MonthlyIncome: 50000, Amount: 100000}, false},
		{"income too low", models.EligibilityRequest{Age: 30, MonthlyIncome: 10000, Amount: 50000}, false},
		{"amount over limit", models.EligibilityRequest{Age: 30, MonthlyIncome: 20000, Amount: 300000}, false},
		{"eligible", models.EligibilityRequest{Age: 30, MonthlyIncome: 50000, Amount: 400000}, true},
		{"at the limit", models.EligibilityRequest{Age: 30, MonthlyIncome: 20000, Amount: 200000}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckEligibility(tt.req)
			assert.Equal(t, tt.eligible, got.Eligible)
			if !got.Eligible {
				assert.NotEmpty(t, got.Reason)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	investments := []models.Investment{
		{Invested: 100000, Current: 120000, Status: "Active"},
		{Invested: 50000, Current: 45000, Status: "Active"},
		{Invested: 0, Current: 0, Status: "Redeemed"},
	}

	s := Summarize(investments)
	assert.Equal(t, 150000.0, s.TotalInvested)
	assert.Equal(t, 165000.0, s.CurrentValue)
	assert.Equal(t, 15000.0, s.TotalReturns)
	assert.InDelta(t, 10.0, s.ReturnsPct, 0.001)
	assert.Equal(t, 2, s.ActiveFunds)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.TotalInvested)
	assert.Zero(t, s.ReturnsPct)
	assert.Zero(t, s.ActiveFunds)
}

func TestNewApplicationNumber(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		n := NewApplicationNumber()
		assert.Regexp(t, `^CSH-[0-9A-F]{8}$`, n)
		assert.False(t, seen[n], "application numbers should not repeat")
		seen[n] = true
	}
}
