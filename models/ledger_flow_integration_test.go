package models_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/ekthaa/khata_backend/config"
	"github.com/ekthaa/khata_backend/models"
	"github.com/ekthaa/khata_backend/utils"
	"github.com/shopspring/decimal"
)

func TestLedgerFlow_RegisterToReminder(t *testing.T) {
	if strings.TrimSpace(os.Getenv("INTEGRATION_TESTS")) == "" {
		t.Skip("set INTEGRATION_TESTS=1 to run integration tests (requires docker)")
	}

	ctx := context.Background()

	redisName, redisPort := startRedisContainer(t)
	t.Cleanup(func() { _ = dockerRmForce(redisName) })

	mysqlName, mysqlPort := startMySQLContainer(t)
	t.Cleanup(func() { _ = dockerRmForce(mysqlName) })

	t.Setenv("REDIS_ADDRESS", fmt.Sprintf("127.0.0.1:%s", redisPort))
	t.Setenv("DB_USER", "root")
	t.Setenv("DB_PASSWORD", "testpw")
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_PORT", mysqlPort)
	t.Setenv("DB_NAME", "khata_test")

	config.ConnectDatabaseWithRetry()
	config.ConnectRedisWithRetry()
	models.MigrateTable()

	login, err := models.Register(ctx, &models.NewRegistration{
		BusinessName: "Sharma General Store",
		Phone:        "9876500001",
		Password:     "secret1",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := models.Register(ctx, &models.NewRegistration{
		BusinessName: "Copycat Store",
		Phone:        "9876500001",
		Password:     "secret1",
	}); utils.KindOf(err) != utils.KindConflict {
		t.Fatalf("duplicate registration error = %v, want conflict", err)
	}

	ownerCtx := utils.SetUserIdInContext(ctx, login.UserId.String())
	ownerCtx = utils.SetUserTypeInContext(ownerCtx, login.UserType)
	ownerCtx = utils.SetBusinessIdInContext(ownerCtx, login.BusinessId.String())

	customer, err := models.CreateCustomer(ownerCtx, &models.NewCustomer{
		Name:  "Ramesh Kumar",
		Phone: "9876543210",
	})
	if err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}
	customerId := customer.ID.String()

	entries := []models.NewTransaction{
		{CustomerId: customerId, Type: models.TransactionTypeCredit, Amount: decimal.NewFromInt(500), Notes: "groceries"},
		{CustomerId: customerId, Type: models.TransactionTypeCredit, Amount: decimal.RequireFromString("250.50")},
		{CustomerId: customerId, Type: models.TransactionTypePayment, Amount: decimal.NewFromInt(300), Notes: "cash"},
	}
	for i := range entries {
		if _, err := models.CreateTransaction(ownerCtx, &entries[i]); err != nil {
			t.Fatalf("CreateTransaction %d: %v", i, err)
		}
	}

	summary, err := models.CustomerBalance(ownerCtx, customerId)
	if err != nil {
		t.Fatalf("CustomerBalance: %v", err)
	}
	if !summary.Balance.Equal(decimal.RequireFromString("450.50")) {
		t.Errorf("balance = %s, want 450.50", summary.Balance)
	}
	if !summary.TotalCredit.Equal(decimal.RequireFromString("750.50")) {
		t.Errorf("total credit = %s, want 750.50", summary.TotalCredit)
	}
	if !summary.TotalPayment.Equal(decimal.NewFromInt(300)) {
		t.Errorf("total payment = %s, want 300", summary.TotalPayment)
	}
	if summary.TransactionCount != 3 {
		t.Errorf("transaction count = %d, want 3", summary.TransactionCount)
	}

	// The materialized row must agree with the fold over the log.
	credit, err := models.GetCustomerCredit(ownerCtx, customerId)
	if err != nil {
		t.Fatalf("GetCustomerCredit: %v", err)
	}
	if !credit.Balance.Equal(summary.Balance) {
		t.Errorf("customer credit balance = %s, ledger fold = %s", credit.Balance, summary.Balance)
	}
	if credit.TransactionCount != summary.TransactionCount {
		t.Errorf("customer credit count = %d, ledger fold = %d", credit.TransactionCount, summary.TransactionCount)
	}

	customers, err := models.ListCustomers(ownerCtx)
	if err != nil {
		t.Fatalf("ListCustomers: %v", err)
	}
	if len(customers) != 1 {
		t.Fatalf("ListCustomers returned %d rows, want 1", len(customers))
	}
	if !customers[0].Balance.Equal(decimal.RequireFromString("450.50")) {
		t.Errorf("listed balance = %s, want 450.50", customers[0].Balance)
	}

	reminder, err := models.RemindCustomer(ownerCtx, customerId)
	if err != nil {
		t.Fatalf("RemindCustomer: %v", err)
	}
	if !strings.Contains(reminder.Message, "outstanding balance") {
		t.Errorf("reminder message %q should mention the outstanding balance", reminder.Message)
	}
	if !reminder.PhoneValid || !strings.HasPrefix(reminder.WhatsappUrl, "https://wa.me/919876543210?text=") {
		t.Errorf("unexpected whatsapp url %q (phone valid %v)", reminder.WhatsappUrl, reminder.PhoneValid)
	}

	// Rebuilding from the log must land on the same figures.
	rebuilt, err := models.RebuildCustomerCredits(ownerCtx)
	if err != nil {
		t.Fatalf("RebuildCustomerCredits: %v", err)
	}
	if rebuilt != 1 {
		t.Errorf("rebuilt %d rows, want 1", rebuilt)
	}
	credit, err = models.GetCustomerCredit(ownerCtx, customerId)
	if err != nil {
		t.Fatalf("GetCustomerCredit after rebuild: %v", err)
	}
	if !credit.Balance.Equal(decimal.RequireFromString("450.50")) {
		t.Errorf("rebuilt balance = %s, want 450.50", credit.Balance)
	}

	// Another business must not be able to read this customer.
	other, err := models.Register(ctx, &models.NewRegistration{
		BusinessName: "Devi Kirana",
		Phone:        "9876500002",
		Password:     "secret2",
	})
	if err != nil {
		t.Fatalf("Register second business: %v", err)
	}
	otherCtx := utils.SetUserIdInContext(ctx, other.UserId.String())
	otherCtx = utils.SetUserTypeInContext(otherCtx, other.UserType)
	otherCtx = utils.SetBusinessIdInContext(otherCtx, other.BusinessId.String())

	if _, err := models.GetCustomer(otherCtx, customerId); utils.KindOf(err) != utils.KindForbidden {
		t.Errorf("cross-tenant GetCustomer error = %v, want forbidden", err)
	}
	if _, err := models.CreateTransaction(otherCtx, &models.NewTransaction{
		CustomerId: customerId,
		Type:       models.TransactionTypeCredit,
		Amount:     decimal.NewFromInt(10),
	}); utils.KindOf(err) != utils.KindForbidden {
		t.Errorf("cross-tenant CreateTransaction error = %v, want forbidden", err)
	}
	otherCustomers, err := models.ListCustomers(otherCtx)
	if err != nil {
		t.Fatalf("ListCustomers for second business: %v", err)
	}
	if len(otherCustomers) != 0 {
		t.Errorf("second business sees %d customers, want 0", len(otherCustomers))
	}
}

func startRedisContainer(t *testing.T) (containerName, hostPort string) {
	t.Helper()
	name := fmt.Sprintf("khata-test-redis-%d", time.Now().UnixNano())
	out, err := dockerRun(
		"run", "-d", "--name", name,
		"-p", "127.0.0.1:0:6379",
		"redis:7-alpine",
	)
	if err != nil {
		t.Fatalf("start redis container: %v\n%s", err, out)
	}
	port, err := dockerHostPort(name, "6379/tcp")
	if err != nil {
		t.Fatalf("redis docker port: %v", err)
	}
	// wait until ready
	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		_, err := dockerRun("exec", name, "redis-cli", "ping")
		if err == nil {
			return name, port
		}
		time.Sleep(250 * time.Millisecond)
	}
	t.Fatalf("redis did not become ready")
	return "", ""
}

func startMySQLContainer(t *testing.T) (containerName, hostPort string) {
	t.Helper()
	name := fmt.Sprintf("khata-test-mysql-%d", time.Now().UnixNano())
	out, err := dockerRun(
		"run", "-d", "--name", name,
		"-e", "MYSQL_ROOT_PASSWORD=testpw",
		"-e", "MYSQL_DATABASE=khata_test",
		"-p", "127.0.0.1:0:3306",
		"mysql:8.0",
		"--default-authentication-plugin=mysql_native_password",
	)
	if err != nil {
		t.Fatalf("start mysql container: %v\n%s", err, out)
	}
	port, err := dockerHostPort(name, "3306/tcp")
	if err != nil {
		t.Fatalf("mysql docker port: %v", err)
	}
	// wait until ready
	deadline := time.Now().Add(120 * time.Second)
	for time.Now().Before(deadline) {
		_, err := dockerRun("exec", name, "mysqladmin", "ping", "-h", "127.0.0.1", "-ptestpw", "--silent")
		if err == nil {
			return name, port
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("mysql did not become ready")
	return "", ""
}

func dockerHostPort(container, portProto string) (string, error) {
	out, err := dockerRun("port", container, portProto)
	if err != nil {
		return "", fmt.Errorf("docker port: %w: %s", err, out)
	}
	// Example: "127.0.0.1:49154\n"
	re := regexp.MustCompile(`:(\d+)`)
	m := re.FindStringSubmatch(out)
	if len(m) != 2 {
		return "", fmt.Errorf("unexpected docker port output: %q", out)
	}
	return m[1], nil
}

func dockerRmForce(container string) error {
	if strings.TrimSpace(container) == "" {
		return nil
	}
	_, err := dockerRun("rm", "-f", container)
	return err
}

func dockerRun(args ...string) (string, error) {
	cmd := exec.Command("docker", args...)
	b, err := cmd.CombinedOutput()
	return string(b), err
}
