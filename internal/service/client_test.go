package service

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/cleberrangel/pendientes-api/internal/database"
	"github.com/cleberrangel/pendientes-api/internal/migration"
	"github.com/cleberrangel/pendientes-api/internal/model"
	"github.com/cleberrangel/pendientes-api/internal/repository"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clientFixture struct {
	svc     *ClientService
	clients *repository.ClientRepository
	tasks   *repository.TaskRepository
	pending *repository.PendingRepository
	sender  *fakeSender
}

func newClientFixture(t *testing.T, now time.Time) *clientFixture {
	t.Helper()
	db, err := database.Connect(database.Config{
		Driver: database.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "svc.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, migration.NewMigrator(db, database.DriverSQLite).Run())

	f := &clientFixture{
		clients: repository.NewClientRepository(db),
		tasks:   repository.NewTaskRepository(db),
		pending: repository.NewPendingRepository(db),
		sender:  &fakeSender{},
	}
	f.svc = NewClientService(f.clients, f.tasks, f.pending, f.sender)
	f.svc.now = func() time.Time { return now }
	return f
}

func (f *clientFixture) client(t *testing.T, empresa string, tasks ...string) int64 {
	t.Helper()
	id, err := f.clients.Create(context.Background(), model.Client{Empresa: empresa, Estado: model.EstadoPendiente})
	require.NoError(t, err)
	_, err = f.tasks.CreateMany(context.Background(), id, tasks)
	require.NoError(t, err)
	return id
}

func TestCreatePendingFromTasks(t *testing.T) {
	ctx := context.Background()
	f := newClientFixture(t, tuesday)
	id := f.client(t, "Acme SAC", "Libro diario", "Libro mayor", "Balance")

	open, err := f.tasks.ListOpenByClient(ctx, id)
	require.NoError(t, err)
	require.NoError(t, f.tasks.SetCompleted(ctx, open[0].ID, true))

	n, err := f.svc.CreatePendingFromTasks(ctx, id, model.CreatePendingFromTasksRequest{
		Email:       "contador@acme.pe",
		FechaLimite: "2025-06-30",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	items, err := f.pending.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, it := range items {
		assert.Equal(t, "Acme SAC", it.Empresa)
		assert.Equal(t, "Tarea del cliente: Acme SAC", it.Descripcion)
		assert.Equal(t, model.EstadoPendiente, it.Estado)
		assert.Equal(t, "2025-06-10", it.Fecha)
		assert.Equal(t, "2025-06-30", it.FechaLimite)
		assert.Equal(t, "contador@acme.pe", it.EmailNotificacion)
		assert.Equal(t, 3, it.Threshold())
	}

	left, err := f.tasks.ListOpenByClient(ctx, id)
	require.NoError(t, err)
	assert.Len(t, left, 2, "as tarefas de origem não são alteradas")
}

func TestCreatePendingFromTasksErrors(t *testing.T) {
	ctx := context.Background()
	f := newClientFixture(t, tuesday)
	empty := f.client(t, "Vacía")

	_, err := f.svc.CreatePendingFromTasks(ctx, empty, model.CreatePendingFromTasksRequest{})
	assert.ErrorIs(t, err, model.ErrNoEmail)

	_, err = f.svc.CreatePendingFromTasks(ctx, 999, model.CreatePendingFromTasksRequest{Email: "a@b.pe"})
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = f.svc.CreatePendingFromTasks(ctx, empty, model.CreatePendingFromTasksRequest{Email: "a@b.pe"})
	assert.ErrorIs(t, err, model.ErrNoPendingTasks)

	_, err = f.svc.CreatePendingFromTasks(ctx, empty, model.CreatePendingFromTasksRequest{Email: "a@b.pe", FechaLimite: "30/06/2025"})
	assert.ErrorIs(t, err, model.ErrInvalidDate)
}

// Propriedade: N tarefas abertas geram exatamente N pendentes com a empresa do cliente
func TestCreatePendingFromTasksCountProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 15
	properties := gopter.NewProperties(parameters)

	properties.Property("N tarefas geram N pendentes", prop.ForAll(
		func(n int) bool {
			ctx := context.Background()
			f := newClientFixture(t, tuesday)
			tasks := make([]string, n)
			for i := range tasks {
				tasks[i] = fmt.Sprintf("tarea %d", i)
			}
			id := f.client(t, "Empresa Prop", tasks...)

			created, err := f.svc.CreatePendingFromTasks(ctx, id, model.CreatePendingFromTasksRequest{Email: "x@y.pe"})
			if err != nil || created != n {
				return false
			}
			items, err := f.pending.List(ctx)
			if err != nil || len(items) != n {
				return false
			}
			for _, it := range items {
				if it.Empresa != "Empresa Prop" {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 12),
	))

	properties.TestingRun(t)
}

func TestSendOpenTasks(t *testing.T) {
	ctx := context.Background()
	f := newClientFixture(t, tuesday)
	id := f.client(t, "Acme SAC", "Libro diario", "Balance")

	f.sender.failTo = map[string]bool{"caido@acme.pe": true}
	result, err := f.svc.SendOpenTasks(ctx, id, model.SendTasksRequest{
		Emails: []string{"jefe@acme.pe", "caido@acme.pe; socio@acme.pe"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"jefe@acme.pe", "socio@acme.pe"}, result.Sent)
	assert.Equal(t, []string{"caido@acme.pe"}, result.Failed)
	assert.Equal(t, "Enviado a 2 de 3 destinatarios. Fallaron: caido@acme.pe", result.Message())

	require.Equal(t, 2, f.sender.count())
	msg := f.sender.sent[0]
	assert.Equal(t, "📋 Tareas Pendientes - Acme SAC", msg.Subject)
	assert.Contains(t, msg.Body, "TAREAS PENDIENTES (2):")
	assert.Contains(t, msg.Body, "Libro diario")
}

func TestSendOpenTasksErrors(t *testing.T) {
	ctx := context.Background()

	weekend := newClientFixture(t, saturday)
	id := weekend.client(t, "Acme", "tarea")
	_, err := weekend.svc.SendOpenTasks(ctx, id, model.SendTasksRequest{Emails: []string{"a@b.pe"}})
	assert.ErrorIs(t, err, model.ErrWeekend)

	f := newClientFixture(t, tuesday)
	id = f.client(t, "Acme", "tarea")
	empty := f.client(t, "Sin tareas")

	_, err = f.svc.SendOpenTasks(ctx, id, model.SendTasksRequest{Emails: []string{" ", ""}})
	assert.ErrorIs(t, err, model.ErrNoRecipients)

	_, err = f.svc.SendOpenTasks(ctx, empty, model.SendTasksRequest{Emails: []string{"a@b.pe"}})
	assert.ErrorIs(t, err, model.ErrNoPendingTasks)

	f.sender.failTo = map[string]bool{"a@b.pe": true}
	result, err := f.svc.SendOpenTasks(ctx, id, model.SendTasksRequest{Emails: []string{"a@b.pe"}})
	assert.ErrorIs(t, err, model.ErrMailFailed)
	assert.Equal(t, "Error al enviar correos a todos los destinatarios", result.Message())
}

func TestCompleteAllTasks(t *testing.T) {
	ctx := context.Background()
	f := newClientFixture(t, tuesday)
	clientID := f.client(t, "Acme SAC", "uno", "dos")
	other := f.client(t, "Otra", "tres")

	pid, err := f.pending.Create(ctx, model.PendingItem{
		Fecha: "2025-06-10", Actividad: "Cierre", Empresa: "Acme SAC", Estado: model.EstadoPendiente,
	})
	require.NoError(t, err)

	item, err := f.svc.CompleteAllTasks(ctx, pid)
	require.NoError(t, err)
	assert.Equal(t, model.EstadoFinalizado, item.Estado)

	stored, err := f.pending.Get(ctx, pid)
	require.NoError(t, err)
	assert.Equal(t, model.EstadoFinalizado, stored.Estado)

	c, err := f.clients.Get(ctx, clientID)
	require.NoError(t, err)
	assert.True(t, c.CheckEstado)

	tasks, err := f.tasks.ListByClient(ctx, clientID)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	tasks, err = f.tasks.ListByClient(ctx, other)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)

	_, err = f.svc.CompleteAllTasks(ctx, 999)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestCompleteAllTasksWithoutMatchingClient(t *testing.T) {
	ctx := context.Background()
	f := newClientFixture(t, tuesday)

	pid, err := f.pending.Create(ctx, model.PendingItem{
		Fecha: "2025-06-10", Actividad: "Suelto", Empresa: "Nadie", Estado: model.EstadoPendiente,
	})
	require.NoError(t, err)

	item, err := f.svc.CompleteAllTasks(ctx, pid)
	require.NoError(t, err)
	assert.Equal(t, model.EstadoFinalizado, item.Estado)
}

func TestAddGlobalTaskHonoursExclusions(t *testing.T) {
	ctx := context.Background()
	f := newClientFixture(t, tuesday)
	a := f.client(t, "A")
	b := f.client(t, "B")
	c := f.client(t, "C")

	n, err := f.svc.AddGlobalTask(ctx, model.GlobalTaskRequest{Description: "Cierre anual", ExcludedClientIDs: []int64{b}})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	for id, want := range map[int64]int{a: 1, b: 0, c: 1} {
		tasks, err := f.tasks.ListByClient(ctx, id)
		require.NoError(t, err)
		assert.Len(t, tasks, want)
	}

	_, err = f.svc.AddGlobalTask(ctx, model.GlobalTaskRequest{Description: "   "})
	assert.ErrorIs(t, err, model.ErrEmptyDescription)
}
