package repository

import (
	"testing"

	"github.com/cleberrangel/pendientes-api/internal/model"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientCRUD(t *testing.T) {
	repo := NewClientRepository(setupTestDB(t))

	id, err := repo.Create(ctx, model.Client{Empresa: "Acme SAC", Observaciones: "régimen MYPE", Estado: model.EstadoPendiente})
	require.NoError(t, err)

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Acme SAC", got.Empresa)
	assert.False(t, got.CheckEstado)

	got.CheckEstado = true
	got.Procedimiento = "Revisar libros"
	require.NoError(t, repo.Update(ctx, id, got))

	byName, err := repo.FindByEmpresa(ctx, "Acme SAC")
	require.NoError(t, err)
	assert.Equal(t, id, byName.ID)
	assert.True(t, byName.CheckEstado)
	assert.Equal(t, "Revisar libros", byName.Procedimiento)

	require.NoError(t, repo.SetChecked(ctx, id, false))
	got, err = repo.Get(ctx, id)
	require.NoError(t, err)
	assert.False(t, got.CheckEstado)

	require.NoError(t, repo.Delete(ctx, id))
	_, err = repo.Get(ctx, id)
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = repo.FindByEmpresa(ctx, "Acme SAC")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestClientDeleteKeepsTasks(t *testing.T) {
	db := setupTestDB(t)
	clients := NewClientRepository(db)
	tasks := NewTaskRepository(db)

	id, err := clients.Create(ctx, model.Client{Empresa: "Beta EIRL", Estado: model.EstadoPendiente})
	require.NoError(t, err)
	require.NoError(t, tasks.Create(ctx, id, "Enviar PDT"))

	require.NoError(t, clients.Delete(ctx, id))

	orphan, err := tasks.ListByClient(ctx, id)
	require.NoError(t, err)
	assert.Len(t, orphan, 1)
}

func TestListSummariesAggregatesTasks(t *testing.T) {
	db := setupTestDB(t)
	clients := NewClientRepository(db)
	tasks := NewTaskRepository(db)

	zeta, err := clients.Create(ctx, model.Client{Empresa: "Zeta", Estado: model.EstadoPendiente})
	require.NoError(t, err)
	alfa, err := clients.Create(ctx, model.Client{Empresa: "Alfa", Estado: model.EstadoPendiente})
	require.NoError(t, err)

	_, err = tasks.CreateMany(ctx, alfa, []string{"Libro diario", "Libro mayor", "Balance"})
	require.NoError(t, err)

	open, err := tasks.ListOpenByClient(ctx, alfa)
	require.NoError(t, err)
	require.NoError(t, tasks.SetCompleted(ctx, open[0].ID, true))

	summaries, err := clients.ListSummaries(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, alfa, summaries[0].ID)
	assert.Equal(t, 3, summaries[0].TotalTasks)
	assert.Equal(t, 1, summaries[0].CompletedTasks)
	assert.Equal(t, "Libro diario|||Libro mayor|||Balance", summaries[0].TaskList)
	assert.Equal(t, []string{"Libro diario", "Libro mayor", "Balance"}, summaries[0].Tasks)

	assert.Equal(t, zeta, summaries[1].ID)
	assert.Equal(t, 0, summaries[1].TotalTasks)
	assert.Equal(t, "", summaries[1].TaskList)
	assert.NotNil(t, summaries[1].Tasks)
}

// Propriedade: total e concluídas do resumo batem com as tarefas gravadas
func TestListSummariesCountsProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20

	properties := gopter.NewProperties(parameters)

	properties.Property("contadores refletem as tarefas do cliente", prop.ForAll(
		func(flags []bool) bool {
			db := setupTestDB(t)
			clients := NewClientRepository(db)
			tasks := NewTaskRepository(db)

			id, err := clients.Create(ctx, model.Client{Empresa: "Gamma", Estado: model.EstadoPendiente})
			if err != nil {
				return false
			}

			done := 0
			for i, completed := range flags {
				if err := tasks.Create(ctx, id, "tarea"); err != nil {
					return false
				}
				list, err := tasks.ListByClient(ctx, id)
				if err != nil || len(list) != i+1 {
					return false
				}
				if completed {
					if err := tasks.SetCompleted(ctx, list[0].ID, true); err != nil {
						return false
					}
					done++
				}
			}

			summaries, err := clients.ListSummaries(ctx)
			if err != nil || len(summaries) != 1 {
				return false
			}
			return summaries[0].TotalTasks == len(flags) && summaries[0].CompletedTasks == done
		},
		gen.SliceOfN(8, gen.Bool()),
	))

	properties.TestingRun(t)
}

func TestClientCreateManyAndIDs(t *testing.T) {
	repo := NewClientRepository(setupTestDB(t))

	n, err := repo.CreateMany(ctx, []model.Client{
		{Empresa: "Uno", Estado: model.EstadoPendiente},
		{Empresa: "Dos", Estado: model.EstadoPendiente},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	ids, err := repo.IDs(ctx)
	require.NoError(t, err)
	assert.Len(t, ids, 2)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Dos", list[0].Empresa)
}
