package repositories

import (
	"context"
	"log"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"cashper/internal/models"
	"cashper/internal/utils/currency"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// sourceCollectionKey tags merged documents with the collection they came
// from so normalization can infer the loan type. Underscored to keep it out
// of the way of real document fields.
const sourceCollectionKey = "_collectionName"

// LoanAdminRepository is the admin-facing read/write path over all loan
// collections. Reads merge the five differently-shaped collections into one
// normalized view; writes go to the admin collection only.
type LoanAdminRepository struct {
	db *mongo.Database
}

func NewLoanAdminRepository(db *mongo.Database) *LoanAdminRepository {
	return &LoanAdminRepository{db: db}
}

func (r *LoanAdminRepository) collection() *mongo.Collection {
	return r.db.Collection(models.CollAdminLoans)
}

// statusFilter builds the status clause. The match is case-insensitive but
// anchored: "Under Review" will not match a document whose status merely
// contains "under".
func statusFilter(status string) bson.M {
	if status == "" || strings.EqualFold(status, "all") {
		return bson.M{}
	}
	return bson.M{"status": bson.M{
		"$regex":   "^" + regexp.QuoteMeta(strings.TrimSpace(status)) + "$",
		"$options": "i",
	}}
}

// searchFilter builds the free-text clause over the fields the admin panel
// searches. This one is deliberately a substring match.
func searchFilter(search string) bson.M {
	if search == "" {
		return bson.M{}
	}
	pattern := regexp.QuoteMeta(search)
	re := bson.M{"$regex": pattern, "$options": "i"}
	return bson.M{"$or": bson.A{
		bson.M{"customer": re},
		bson.M{"fullName": re},
		bson.M{"email": re},
		bson.M{"phone": re},
		bson.M{"purpose": re},
	}}
}

// collectionsForType narrows the collections to scan when a loan_type filter
// is present. The admin collection holds mixed types, so it is always
// included and gets its own type clause instead.
func collectionsForType(loanType string) []models.LoanCollection {
	if loanType == "" || strings.EqualFold(loanType, "all") {
		return models.LoanCollections
	}
	var out []models.LoanCollection
	for _, lc := range models.LoanCollections {
		if lc.Type == "" {
			out = append(out, lc)
			continue
		}
		if strings.Contains(strings.ToLower(lc.Type), strings.ToLower(loanType)) {
			out = append(out, lc)
		}
	}
	if len(out) <= 1 {
		// Unknown type text; fall back to scanning everything.
		return models.LoanCollections
	}
	return out
}

// GetAllApplications merges matching applications from every loan collection,
// sorts the whole merged list by application date descending, and slices the
// requested page. Pagination happens after full materialization so the
// returned total is always the true cross-collection count.
func (r *LoanAdminRepository) GetAllApplications(ctx context.Context, status, loanType, search string, skip, limit int) ([]models.AdminLoanApplication, int64, error) {
	var all []bson.M

	for _, lc := range collectionsForType(loanType) {
		query := bson.M{}
		for k, v := range statusFilter(status) {
			query[k] = v
		}
		for k, v := range searchFilter(search) {
			query[k] = v
		}
		if lc.Name == models.CollAdminLoans && loanType != "" && !strings.EqualFold(loanType, "all") {
			query["type"] = bson.M{"$regex": regexp.QuoteMeta(loanType), "$options": "i"}
		}

		opCtx, cancel := opContext(ctx)
		cursor, err := r.db.Collection(lc.Name).Find(opCtx, query,
			options.Find().SetSort(bson.D{{Key: "appliedDate", Value: -1}}))
		if err != nil {
			cancel()
			log.Printf("Error querying %s: %v", lc.Name, err)
			continue
		}

		var docs []bson.M
		if err := cursor.All(opCtx, &docs); err != nil {
			cancel()
			log.Printf("Error reading %s: %v", lc.Name, err)
			continue
		}
		cancel()

		for _, doc := range docs {
			doc[sourceCollectionKey] = lc.Name
			all = append(all, doc)
		}
	}

	sortLoansByDate(all)
	total := int64(len(all))

	page := paginateLoans(all, skip, limit)
	out := make([]models.AdminLoanApplication, 0, len(page))
	for _, doc := range page {
		name, _ := doc[sourceCollectionKey].(string)
		out = append(out, loanToResponse(doc, name))
	}
	return out, total, nil
}

// GetApplicationByID fetches a single application from the admin collection,
// normalized the same way as the merged list.
func (r *LoanAdminRepository) GetApplicationByID(ctx context.Context, id string) (*models.AdminLoanApplication, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrNotFound
	}
	opCtx, cancel := opContext(ctx)
	defer cancel()

	var doc bson.M
	err = r.collection().FindOne(opCtx, bson.M{"_id": oid}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	app := loanToResponse(doc, models.CollAdminLoans)
	return &app, nil
}

// CreateApplication inserts a new admin loan application and returns its id.
func (r *LoanAdminRepository) CreateApplication(ctx context.Context, req models.AdminLoanCreate) (string, error) {
	now := time.Now()
	doc := bson.M{
		"customer":     req.Customer,
		"email":        req.Email,
		"phone":        req.Phone,
		"type":         req.Type,
		"amount":       req.Amount,
		"tenure":       req.Tenure,
		"interestRate": req.InterestRate,
		"purpose":      req.Purpose,
		"income":       req.Income,
		"cibilScore":   req.CibilScore,
		"documents":    req.Documents,
		"status":       string(models.StatusPending),
		"appliedDate":  now,
		"createdAt":    now,
		"updatedAt":    now,
	}
	if doc["documents"] == nil {
		doc["documents"] = []string{}
	}

	opCtx, cancel := opContext(ctx)
	defer cancel()

	res, err := r.collection().InsertOne(opCtx, doc)
	if err != nil {
		return "", err
	}
	oid, _ := res.InsertedID.(primitive.ObjectID)
	return oid.Hex(), nil
}

// UpdateApplication applies a partial update and stamps updatedAt.
func (r *LoanAdminRepository) UpdateApplication(ctx context.Context, id string, update bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrNotFound
	}
	update["updatedAt"] = time.Now()

	opCtx, cancel := opContext(ctx)
	defer cancel()

	res, err := r.collection().UpdateOne(opCtx, bson.M{"_id": oid}, bson.M{"$set": update})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// UpdateStatus overwrites the status in place. No audit trail is kept and
// concurrent updates are last-write-wins; callers validate the transition
// before getting here.
func (r *LoanAdminRepository) UpdateStatus(ctx context.Context, id string, status models.LoanStatus, rejectionReason string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrNotFound
	}

	update := bson.M{
		"status":    string(status),
		"updatedAt": time.Now(),
	}
	if rejectionReason != "" {
		update["rejectionReason"] = rejectionReason
	}

	opCtx, cancel := opContext(ctx)
	defer cancel()

	res, err := r.collection().UpdateOne(opCtx, bson.M{"_id": oid}, bson.M{"$set": update})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// DeleteApplication permanently removes an application.
func (r *LoanAdminRepository) DeleteApplication(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrNotFound
	}
	opCtx, cancel := opContext(ctx)
	defer cancel()

	res, err := r.collection().DeleteOne(opCtx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// BulkDelete removes multiple applications, returning the deleted count.
// Malformed ids are skipped rather than failing the whole batch.
func (r *LoanAdminRepository) BulkDelete(ctx context.Context, ids []string) (int64, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return 0, nil
	}
	opCtx, cancel := opContext(ctx)
	defer cancel()

	res, err := r.collection().DeleteMany(opCtx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// GetStatistics aggregates counts and sums across every loan collection.
// Amount summation is a full scan because amounts are stored as
// heterogeneous types; the shared coercion defaults bad values to zero.
func (r *LoanAdminRepository) GetStatistics(ctx context.Context) (*models.LoanStatistics, error) {
	stats := &models.LoanStatistics{}

	var totalAmount, totalCibil, cibilCount int64

	for _, lc := range models.LoanCollections {
		coll := r.db.Collection(lc.Name)

		count := func(filter bson.M) int64 {
			opCtx, cancel := opContext(ctx)
			defer cancel()
			n, err := coll.CountDocuments(opCtx, filter)
			if err != nil {
				log.Printf("Error counting from %s: %v", lc.Name, err)
				return 0
			}
			return n
		}

		collTotal := count(bson.M{})
		stats.TotalApplications += collTotal
		stats.PendingApplications += count(statusFilter(string(models.StatusPending)))
		stats.UnderReviewApplications += count(bson.M{"status": bson.M{"$regex": "^(under review|review)$", "$options": "i"}})
		stats.ApprovedApplications += count(statusFilter(string(models.StatusApproved)))
		stats.RejectedApplications += count(statusFilter(string(models.StatusRejected)))
		stats.DisbursedApplications += count(statusFilter(string(models.StatusDisbursed)))

		switch lc.Type {
		case models.LoanTypeShortTerm:
			stats.ShortTermLoanCount += collTotal
		case models.LoanTypePersonal:
			stats.PersonalLoanCount += collTotal
		case models.LoanTypeBusiness:
			stats.BusinessLoanCount += collTotal
		case models.LoanTypeHome:
			stats.HomeLoanCount += collTotal
		default:
			stats.HomeLoanCount += count(bson.M{"type": bson.M{"$regex": "home", "$options": "i"}})
			stats.PersonalLoanCount += count(bson.M{"type": bson.M{"$regex": "personal", "$options": "i"}})
			stats.BusinessLoanCount += count(bson.M{"type": bson.M{"$regex": "business", "$options": "i"}})
			stats.ShortTermLoanCount += count(bson.M{"type": bson.M{"$regex": "short", "$options": "i"}})
		}

		opCtx, cancel := opContext(ctx)
		cursor, err := coll.Find(opCtx, bson.M{})
		if err != nil {
			cancel()
			log.Printf("Error scanning %s: %v", lc.Name, err)
			continue
		}
		var docs []bson.M
		if err := cursor.All(opCtx, &docs); err != nil {
			cancel()
			log.Printf("Error reading %s: %v", lc.Name, err)
			continue
		}
		cancel()

		for _, doc := range docs {
			totalAmount += currency.ParseAmount(firstField(doc, "amount", "loanAmount"))
			if cibil := numericField(doc, "cibilScore", "creditScore"); cibil > 0 {
				totalCibil += cibil
				cibilCount++
			}
		}
	}

	if cibilCount > 0 {
		stats.AverageCibilScore = int(totalCibil / cibilCount)
	}
	avgAmount := int64(0)
	if stats.TotalApplications > 0 {
		avgAmount = totalAmount / stats.TotalApplications
	}
	stats.TotalLoanAmount = currency.FormatCurrency(totalAmount)
	stats.AverageLoanAmount = currency.FormatCurrency(avgAmount)

	return stats, nil
}

// ---- normalization helpers ----

// loanToResponse converts a raw document from any loan collection into the
// normalized admin view, tolerating the legacy field shapes described above.
func loanToResponse(doc bson.M, collectionName string) models.AdminLoanApplication {
	customer := stringField(doc, "customer", "fullName")
	if customer == "" {
		customer = "Unknown"
	}

	amount := currency.ParseAmount(firstField(doc, "amount", "loanAmount"))
	amountStr := "N/A"
	if amount != 0 {
		amountStr = currency.FormatCurrency(amount)
	}

	status := stringField(doc, "status")
	if parsed, ok := models.ParseLoanStatus(status); ok {
		status = string(parsed)
	} else if status == "" {
		status = string(models.StatusPending)
	} else {
		status = capitalize(status)
	}

	return models.AdminLoanApplication{
		ID:              idField(doc),
		Customer:        customer,
		Email:           stringField(doc, "email"),
		Phone:           stringField(doc, "phone"),
		Type:            inferLoanType(doc, collectionName),
		Amount:          amountStr,
		Status:          status,
		AppliedDate:     currency.FormatDate(firstField(doc, "appliedDate", "createdAt")),
		Tenure:          stringOrNA(firstField(doc, "tenure")),
		InterestRate:    stringOrNA(firstField(doc, "interestRate")),
		Purpose:         stringField(doc, "purpose"),
		Income:          currency.FormatIncome(firstField(doc, "income", "monthlyIncome")),
		CibilScore:      int(numericField(doc, "cibilScore", "creditScore")),
		Documents:       collectDocuments(doc),
		RejectionReason: stringField(doc, "rejectionReason"),
	}
}

// inferLoanType resolves the display type: explicit field, then collection
// name, then purpose keywords, then the bare fallback.
func inferLoanType(doc bson.M, collectionName string) string {
	if t := stringField(doc, "type"); t != "" {
		return t
	}
	switch {
	case strings.Contains(collectionName, "short_term"):
		return models.LoanTypeShortTerm
	case strings.Contains(collectionName, "personal"):
		return models.LoanTypePersonal
	case strings.Contains(collectionName, "business"):
		return models.LoanTypeBusiness
	case strings.Contains(collectionName, "home"):
		return models.LoanTypeHome
	}
	purpose := strings.ToLower(stringField(doc, "purpose"))
	for _, kw := range []string{"wedding", "medical", "education"} {
		if strings.Contains(purpose, kw) {
			return models.LoanTypeShortTerm
		}
	}
	return "Loan"
}

// collectDocuments assembles the uploaded-document list from either an
// explicit documents array or the five legacy single-document fields,
// prefixing bare filenames with the uploads path.
func collectDocuments(doc bson.M) []string {
	docs := []string{}

	switch v := doc["documents"].(type) {
	case primitive.A:
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				docs = append(docs, s)
			}
		}
	case []string:
		for _, s := range v {
			if s != "" {
				docs = append(docs, s)
			}
		}
	case string:
		if v != "" {
			docs = append(docs, v)
		}
	}
	if len(docs) > 0 {
		return docs
	}

	for _, field := range []string{"aadhar", "pan", "bankStatement", "salarySlip", "photo"} {
		val, ok := doc[field].(string)
		if !ok || val == "" {
			continue
		}
		if strings.HasPrefix(val, "/uploads") {
			docs = append(docs, val)
		} else {
			docs = append(docs, "/uploads/documents/"+val)
		}
	}
	return docs
}

// sortLoansByDate orders merged documents by application date descending.
// The sort is stable so equal-dated rows keep their collection order and
// pagination stays reproducible.
func sortLoansByDate(docs []bson.M) {
	sort.SliceStable(docs, func(i, j int) bool {
		return loanSortKey(docs[i]).After(loanSortKey(docs[j]))
	})
}

func loanSortKey(doc bson.M) time.Time {
	for _, field := range []string{"appliedDate", "createdAt"} {
		switch v := doc[field].(type) {
		case time.Time:
			return v
		case primitive.DateTime:
			return v.Time()
		case string:
			if t, err := time.Parse(time.RFC3339, v); err == nil {
				return t
			}
			if t, err := time.Parse("2006-01-02", v); err == nil {
				return t
			}
		}
	}
	return time.Time{}
}

func paginateLoans(docs []bson.M, skip, limit int) []bson.M {
	if skip < 0 {
		skip = 0
	}
	if skip >= len(docs) {
		return nil
	}
	end := skip + limit
	if limit <= 0 || end > len(docs) {
		end = len(docs)
	}
	return docs[skip:end]
}

// ---- field coercion ----

func firstField(doc bson.M, keys ...string) interface{} {
	for _, k := range keys {
		if v, ok := doc[k]; ok && v != nil {
			if s, isStr := v.(string); isStr && s == "" {
				continue
			}
			return v
		}
	}
	return nil
}

func stringField(doc bson.M, keys ...string) string {
	v := firstField(doc, keys...)
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func numericField(doc bson.M, keys ...string) int64 {
	switch v := firstField(doc, keys...).(type) {
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	case float64:
		return int64(v)
	case string:
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return int64(n)
		}
	}
	return 0
}

func stringOrNA(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return "N/A"
	case string:
		if s == "" {
			return "N/A"
		}
		return s
	case int:
		return strconv.Itoa(s)
	case int32:
		return strconv.FormatInt(int64(s), 10)
	case int64:
		return strconv.FormatInt(s, 10)
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64)
	default:
		return "N/A"
	}
}

func idField(doc bson.M) string {
	switch id := doc["_id"].(type) {
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	default:
		return ""
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
