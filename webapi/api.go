package webapi

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"os"
	"strings"

	"github.com/gonuts/commander"
	"github.com/gorilla/mux"

	"yu-val-weiss/hmmtag/app"
	"yu-val-weiss/hmmtag/eval"
	"yu-val-weiss/hmmtag/nlp/format/matrix"
	"yu-val-weiss/hmmtag/nlp/format/raw"
	nlp "yu-val-weiss/hmmtag/nlp/types"
)

var port int

type TagRequest struct {
	Text      string     `json:"text"`
	Sentences [][]string `json:"sentences"`
}

type SentenceResult struct {
	Morphemes []string `json:"morphemes"`
	Tags      []string `json:"tags,omitempty"`
	LogProb   *float64 `json:"logprob,omitempty"`
	Error     string   `json:"error,omitempty"`
}

type TagResponse struct {
	Sentences []SentenceResult `json:"sentences"`
	Failed    int              `json:"failed"`
}

type ScoreRequest struct {
	Predicted string `json:"predicted"`
	Gold      string `json:"gold"`
}

type TagScore struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
}

type ScoreResponse struct {
	Correct    int                 `json:"correct"`
	Total      int                 `json:"total"`
	Accuracy   float64             `json:"accuracy"`
	ExactMatch float64             `json:"exact"`
	Misaligned []int               `json:"misaligned,omitempty"`
	ByTag      map[string]TagScore `json:"tags"`
}

type ModelSummary struct {
	Tags              []string `json:"tags"`
	Vocabulary        int      `json:"vocabulary"`
	TransitionColumns int      `json:"transition_columns"`
	Boundary          string   `json:"boundary"`
	Unk               string   `json:"unk"`
}

// ProbResponse carries the transition log2 P(to | from) as formatted in the
// matrix dumps.
type ProbResponse struct {
	From    string  `json:"from"`
	To      string  `json:"to"`
	LogProb string  `json:"logprob"`
	Prob    float64 `json:"prob"`
}

// EmissionResponse carries log2 P(morpheme | tag); "-inf" for a pair never
// seen in training.
type EmissionResponse struct {
	Morpheme string  `json:"morpheme"`
	Tag      string  `json:"tag"`
	LogProb  string  `json:"logprob"`
	Prob     float64 `json:"prob"`
}

func NewRouter() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/hmm/tag", TagHandler).Methods("POST")
	router.HandleFunc("/hmm/score", ScoreHandler).Methods("POST")
	router.HandleFunc("/hmm/model", ModelHandler).Methods("GET")
	router.HandleFunc("/hmm/transition/{prev}/{cur}", TransitionHandler).Methods("GET")
	router.HandleFunc("/hmm/emission/{morpheme}/{tag}", EmissionHandler).Methods("GET")
	return router
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("Failed writing response:", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	if errors.Is(err, ErrNoModel) {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// TagHandler decodes the posted sentences. A text/plain body is read as
// formatted sentences and answered with one line of tags per sentence.
func TagHandler(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "text/plain") {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		tagged, err := TagFormatted(string(body))
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		io.WriteString(w, tagged)
		return
	}
	var req TagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	sents, err := raw.Read(strings.NewReader(req.Text))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	for _, sent := range req.Sentences {
		morphemes := make(nlp.Sentence, len(sent))
		for i, m := range sent {
			morphemes[i] = nlp.Morpheme(m)
		}
		sents = append(sents, morphemes)
	}
	log.Println("Tagging", len(sents), "sentences")
	results, err := TagSentences(sents)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	resp := TagResponse{Sentences: make([]SentenceResult, len(results))}
	for i, result := range results {
		out := SentenceResult{Morphemes: result.Sentence.Strings()}
		if result.Failed() {
			out.Error = result.Err.Error()
			resp.Failed++
		} else {
			logProb := result.LogProb
			out.Tags = result.Tags.Strings()
			out.LogProb = &logProb
		}
		resp.Sentences[i] = out
	}
	writeJSON(w, http.StatusOK, resp)
}

// ScoreHandler scores predicted tag lines against gold tag lines.
func ScoreHandler(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	predicted, err := raw.ReadTags(strings.NewReader(req.Predicted))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	gold, err := raw.ReadTags(strings.NewReader(req.Gold))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if len(predicted) != len(gold) {
		writeError(w, http.StatusBadRequest, &eval.AlignmentError{Sentence: -1, Predicted: len(predicted), Gold: len(gold)})
		return
	}
	total := eval.NewTotal(false)
	resp := ScoreResponse{ByTag: make(map[string]TagScore)}
	for i := range gold {
		if err := total.AddSentence(predicted[i], gold[i]); err != nil {
			resp.Misaligned = append(resp.Misaligned, i+1)
		}
	}
	resp.Correct, resp.Total = total.Correct, total.Total
	resp.Accuracy = total.Accuracy()
	resp.ExactMatch = total.ExactMatch()
	for _, tag := range total.Tags() {
		counts := total.ByTag[tag]
		resp.ByTag[string(tag)] = TagScore{counts.Precision(), counts.Recall(), counts.F1()}
	}
	writeJSON(w, http.StatusOK, resp)
}

func ModelHandler(w http.ResponseWriter, r *http.Request) {
	model, _, err := current()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, ModelSummary{
		Tags:              model.Tags.Values(),
		Vocabulary:        model.Vocabulary.Len(),
		TransitionColumns: model.Transitions.To.Len(),
		Boundary:          string(model.Boundary),
		Unk:               string(model.Unk),
	})
}

func TransitionHandler(w http.ResponseWriter, r *http.Request) {
	model, _, err := current()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	vars := mux.Vars(r)
	prev, cur := nlp.Tag(vars["prev"]), nlp.Tag(vars["cur"])
	logProb, exists := model.Transitions.LogProb(prev, cur)
	if !exists {
		writeError(w, http.StatusNotFound, fmt.Errorf("no transition %s -> %s", prev, cur))
		return
	}
	writeJSON(w, http.StatusOK, ProbResponse{string(prev), string(cur), matrix.FormatValue(logProb), math.Exp2(logProb)})
}

// EmissionHandler looks up an emission; morphemes outside the vocabulary are
// looked up as the UNK symbol, which is reported in the response.
func EmissionHandler(w http.ResponseWriter, r *http.Request) {
	model, _, err := current()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	vars := mux.Vars(r)
	morpheme := model.Known(nlp.Sentence{nlp.Morpheme(vars["morpheme"])})[0]
	tag := nlp.Tag(vars["tag"])
	logProb, exists := model.Emissions.LogProb(morpheme, tag)
	if !exists {
		writeError(w, http.StatusNotFound, fmt.Errorf("no emission %s/%s", morpheme, tag))
		return
	}
	writeJSON(w, http.StatusOK, EmissionResponse{string(morpheme), string(tag), matrix.FormatValue(logProb), math.Exp2(logProb)})
}

func API(cmd *commander.Command, args []string) error {
	if err := TaggerInitialize(cmd, args); err != nil {
		return err
	}
	addr := fmt.Sprintf(":%d", port)
	log.Println("Listening on", addr)
	return http.ListenAndServe(addr, NewRouter())
}

func APICmd() *commander.Command {
	cmd := &commander.Command{
		Run:       API,
		UsageLine: "api <file options> [arguments]",
		Short:     "serve a trained HMM tagger over http",
		Long: `
serve a trained HMM tagger over http

	$ ./hmmtag api -m <model file> [-port 8000]
	$ ./hmmtag api -train <tagged file> [-port 8000]

routes:
	POST /hmm/tag                        {"text": "..."} or text/plain formatted sentences
	POST /hmm/score                      {"predicted": "...", "gold": "..."}
	GET  /hmm/model
	GET  /hmm/transition/{prev}/{cur}
	GET  /hmm/emission/{morpheme}/{tag}

`,
		Flag: *flag.NewFlagSet("api", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&app.Config.Files.Model, "m", "", "Model file")
	cmd.Flag.StringVar(&app.Config.Files.Train, "train", "", "Tagged training corpus (when no model is given)")
	cmd.Flag.IntVar(&app.Config.Workers, "workers", 0, "Concurrent decoders per request; 0 = all CPUs")
	cmd.Flag.IntVar(&port, "port", 8000, "Port to listen on")
	app.HMMFlags(cmd)
	return cmd
}

func AllCommands() *commander.Command {
	cmd := &commander.Command{
		UsageLine: os.Args[0] + " api",
		Short:     "serve the HMM tagger over http",
		Subcommands: []*commander.Command{
			APICmd(),
		},
	}
	for _, api := range cmd.Subcommands {
		api.Run = app.NewAppWrapCommand(api.Run)
		app.CommonFlags(api)
	}
	return cmd
}
