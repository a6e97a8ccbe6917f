package client

import (
	"context"
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowledge2-io/knowledge2-go/pkg/k2"
)

// newTrainingClient wires a training client and its job poller to the same
// test server, with poll timings suitable for tests.
func newTrainingClient(server *httptest.Server) *TrainingClient {
	httpClient := newHTTPClient(server)
	jobs := NewJobsClient(httpClient)
	jobs.pollInterval = 5 * time.Millisecond
	jobs.pollTimeout = time.Second

	return NewTrainingClient(httpClient, jobs)
}

func TestTrainingClient_BuildTrainingData(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, nethttp.MethodPost, r.Method)
		assert.Equal(t, "/v1/corpora/corpus-1/training-data:build", r.URL.Path)
		assert.Equal(t, "build-key-1", r.Header.Get("Idempotency-Key"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{}`, string(body))

		w.WriteHeader(nethttp.StatusAccepted)
		_, _ = w.Write([]byte(`{"job_id":"job-1","dataset_id":"ds-1"}`))
	}))
	defer server.Close()

	training := newTrainingClient(server)
	defer training.httpClient.Close()

	result, err := training.BuildTrainingData(context.Background(), "corpus-1", "build-key-1")
	require.NoError(t, err)
	assert.Equal(t, "job-1", result.JobID)
	assert.Equal(t, "ds-1", result.DatasetID)
}

func TestTrainingClient_BuildTrainingDataWithoutKey(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		_, present := r.Header["Idempotency-Key"]
		assert.False(t, present, "Idempotency-Key must be absent when no key is given")

		_, _ = w.Write([]byte(`{"job_id":"job-1","dataset_id":"ds-1"}`))
	}))
	defer server.Close()

	training := newTrainingClient(server)
	defer training.httpClient.Close()

	_, err := training.BuildTrainingData(context.Background(), "corpus-1", "")
	require.NoError(t, err)
}

func TestTrainingClient_ListTrainingData(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "/v1/corpora/corpus-1/training-data", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("limit"))

		_, _ = w.Write([]byte(`{"datasets":[{"id":"ds-1","sample_count":1200}],"total":1}`))
	}))
	defer server.Close()

	training := newTrainingClient(server)
	defer training.httpClient.Close()

	list, err := training.ListTrainingData(context.Background(), "corpus-1", k2.NewListParams().WithLimit(5))
	require.NoError(t, err)
	require.Len(t, list.Datasets, 1)
	assert.Equal(t, 1200, list.Datasets[0].SampleCount)
}

func TestTrainingClient_IterateTrainingData(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		switch r.URL.Query().Get("offset") {
		case "", "0":
			_, _ = w.Write([]byte(`{"datasets":[{"id":"ds-1"},{"id":"ds-2"}],"total":3}`))
		case "2":
			_, _ = w.Write([]byte(`{"datasets":[{"id":"ds-3"}],"total":3}`))
		default:
			t.Errorf("unexpected offset %q", r.URL.Query().Get("offset"))
		}
	}))
	defer server.Close()

	training := newTrainingClient(server)
	defer training.httpClient.Close()

	datasets, err := training.IterateTrainingData(context.Background(), "corpus-1", 2).All()
	require.NoError(t, err)
	require.Len(t, datasets, 3)
	assert.Equal(t, "ds-3", datasets[2].ID)
}

func TestTrainingClient_CreateTuningRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		useFTK   bool
		wantBody string
	}{
		{name: "standard trainer", useFTK: false, wantBody: `{}`},
		{name: "ftk trainer", useFTK: true, wantBody: `{"use_ftk":true}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
				assert.Equal(t, nethttp.MethodPost, r.Method)
				assert.Equal(t, "/v1/corpora/corpus-1/tuning-runs", r.URL.Path)

				body, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				assert.JSONEq(t, tt.wantBody, string(body))

				_, _ = w.Write([]byte(`{"run_id":"run-1","status":"pending","job_id":"job-2"}`))
			}))
			defer server.Close()

			training := newTrainingClient(server)
			defer training.httpClient.Close()

			result, err := training.CreateTuningRun(context.Background(), "corpus-1", "", tt.useFTK)
			require.NoError(t, err)
			assert.Equal(t, "run-1", result.RunID)
			assert.Equal(t, "job-2", result.JobID)
		})
	}
}

func TestTrainingClient_BuildAndStartTuningRun(t *testing.T) {
	t.Parallel()

	t.Run("waits for the build job", func(t *testing.T) {
		t.Parallel()

		polls := 0
		server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			switch r.URL.Path {
			case "/v1/corpora/corpus-1/tuning-runs:build":
				assert.Equal(t, "run-key-1", r.Header.Get("Idempotency-Key"))
				w.WriteHeader(nethttp.StatusAccepted)
				_, _ = w.Write([]byte(`{"run_id":"run-1","status":"pending","build_job_id":"job-9","dataset_id":"ds-1"}`))
			case "/v1/jobs/job-9":
				polls++

				status := k2.JobStatusRunning
				if polls >= 3 {
					status = k2.JobStatusSucceeded
				}

				_, _ = w.Write([]byte(`{"id":"job-9","job_type":"training_data_build","status":"` + status + `"}`))
			default:
				t.Errorf("unexpected path %q", r.URL.Path)
			}
		}))
		defer server.Close()

		training := newTrainingClient(server)
		defer training.httpClient.Close()

		result, err := training.BuildAndStartTuningRun(context.Background(), "corpus-1", "run-key-1", true)
		require.NoError(t, err)
		assert.Equal(t, "run-1", result.RunID)
		assert.Equal(t, "job-9", result.BuildJobID)
		assert.GreaterOrEqual(t, polls, 3)
	})

	t.Run("returns immediately without wait", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			require.Equal(t, "/v1/corpora/corpus-1/tuning-runs:build", r.URL.Path)

			_, _ = w.Write([]byte(`{"run_id":"run-1","status":"pending","build_job_id":"job-9","dataset_id":"ds-1"}`))
		}))
		defer server.Close()

		training := newTrainingClient(server)
		defer training.httpClient.Close()

		result, err := training.BuildAndStartTuningRun(context.Background(), "corpus-1", "", false)
		require.NoError(t, err)
		assert.Equal(t, "run-1", result.RunID)
	})

	t.Run("failed build job surfaces the error and the run", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			switch r.URL.Path {
			case "/v1/corpora/corpus-1/tuning-runs:build":
				_, _ = w.Write([]byte(`{"run_id":"run-1","status":"pending","build_job_id":"job-9","dataset_id":"ds-1"}`))
			case "/v1/jobs/job-9":
				_, _ = w.Write([]byte(`{"id":"job-9","status":"failed","error_message":"not enough documents"}`))
			default:
				t.Errorf("unexpected path %q", r.URL.Path)
			}
		}))
		defer server.Close()

		training := newTrainingClient(server)
		defer training.httpClient.Close()

		result, err := training.BuildAndStartTuningRun(context.Background(), "corpus-1", "", true)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "waiting for training data build")
		require.NotNil(t, result)
		assert.Equal(t, "run-1", result.RunID)
	})
}

func TestTrainingClient_ListTuningRuns(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "/v1/corpora/corpus-1/tuning-runs", r.URL.Path)

		_, _ = w.Write([]byte(`{"runs":[{"run_id":"run-1","status":"succeeded"},{"run_id":"run-2","status":"running"}],"total":2}`))
	}))
	defer server.Close()

	training := newTrainingClient(server)
	defer training.httpClient.Close()

	list, err := training.ListTuningRuns(context.Background(), "corpus-1", nil)
	require.NoError(t, err)
	require.Len(t, list.Runs, 2)
	assert.Equal(t, "succeeded", list.Runs[0].Status)
}

func TestTrainingClient_GetTuningRun(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "/v1/tuning-runs/run-1", r.URL.Path)

		_, _ = w.Write([]byte(`{"run_id":"run-1","status":"succeeded","metrics":{"ndcg_at_10":0.82}}`))
	}))
	defer server.Close()

	training := newTrainingClient(server)
	defer training.httpClient.Close()

	run, err := training.GetTuningRun(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, "succeeded", run.Status)
	assert.InDelta(t, 0.82, run.Metrics["ndcg_at_10"], 0.0001)
}

func TestTrainingClient_GetTuningRunLogs(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "/v1/tuning-runs/run-1/logs", r.URL.Path)
		assert.Equal(t, "50", r.URL.Query().Get("tail"))

		_, _ = w.Write([]byte(`{"lines":["epoch 1 done","epoch 2 done"]}`))
	}))
	defer server.Close()

	training := newTrainingClient(server)
	defer training.httpClient.Close()

	logs, err := training.GetTuningRunLogs(context.Background(), "run-1", 50)
	require.NoError(t, err)
	require.Len(t, logs.Lines, 2)
	assert.Equal(t, "epoch 2 done", logs.Lines[1])
}

func TestTrainingClient_CancelAndPromote(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, nethttp.MethodPost, r.Method)

		switch r.URL.Path {
		case "/v1/tuning-runs/run-1:cancel":
			_, _ = w.Write([]byte(`{"status":"canceled"}`))
		case "/v1/tuning-runs/run-2:promote":
			_, _ = w.Write([]byte(`{"model_id":"model-7"}`))
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
		}
	}))
	defer server.Close()

	training := newTrainingClient(server)
	defer training.httpClient.Close()

	canceled, err := training.CancelTuningRun(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, "canceled", canceled.Status)

	promoted, err := training.PromoteTuningRun(context.Background(), "run-2")
	require.NoError(t, err)
	assert.Equal(t, "model-7", promoted.ModelID)
}

func TestTrainingClient_GetEvalRun(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "/v1/eval-runs/eval-1", r.URL.Path)

		response := map[string]interface{}{
			"eval_id": "eval-1",
			"status":  "succeeded",
			"metrics": map[string]interface{}{"recall_at_5": 0.91},
		}
		require.NoError(t, json.NewEncoder(w).Encode(response))
	}))
	defer server.Close()

	training := newTrainingClient(server)
	defer training.httpClient.Close()

	run, err := training.GetEvalRun(context.Background(), "eval-1")
	require.NoError(t, err)
	assert.Equal(t, "eval-1", run.EvalID)
	assert.InDelta(t, 0.91, run.Metrics["recall_at_5"], 0.0001)
}

func TestTrainingClient_DuplicateIdempotencyKey(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, _ *nethttp.Request) {
		w.WriteHeader(nethttp.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"duplicate idempotency key"}`))
	}))
	defer server.Close()

	training := newTrainingClient(server)
	defer training.httpClient.Close()

	_, err := training.CreateTuningRun(context.Background(), "corpus-1", "dup-key", false)
	require.Error(t, err)
	assert.True(t, k2.IsConflict(err))
}
